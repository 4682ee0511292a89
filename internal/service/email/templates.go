package email

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #1f2937; max-width: 720px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #0f766e, #115e59); color: white; padding: 24px; border-radius: 10px 10px 0 0; }
        .header h1 { margin: 0; font-size: 22px; }
        .content { padding: 24px; border: 1px solid #e5e7eb; border-top: none; }
        .footer { background: #f9fafb; padding: 16px; text-align: center; font-size: 12px; color: #6b7280; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px; }
        table { border-collapse: collapse; }
        td, th { border: 1px solid #e5e7eb; padding: 4px 8px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Trade Intelligence Report</h1>
        <p>Focus: {{.Focus}}</p>
    </div>
    <div class="content">
        {{.Body}}
    </div>
    <div class="footer">
        Generated {{.GeneratedAt}} by {{.AppName}}
    </div>
</body>
</html>`
