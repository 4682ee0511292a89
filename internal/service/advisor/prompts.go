package advisor

const reportPrompt = `You are a Senior Trade Analyst and Data Scientist.

Task: Generate a comprehensive, professional Trade Intelligence Report based on the provided dataset.

User Focus Area: "%[1]s"

Dataset Columns: %[2]s

Sample Data (first %[3]d rows):
%[4]s

Total Records in Dataset: %[5]d

Instructions:
1. Analyze the provided sample data to identify trends, anomalies, and key insights.
2. Focus specifically on the user's requested area: "%[1]s".
3. Structure the report in Markdown format with the following sections:
   - **Executive Summary**: High-level overview of the findings.
   - **Key Trends**: Bullet points of major patterns observed (e.g., top ports, rising products).
   - **Focus Analysis**: Deep dive into the "%[1]s" aspect.
   - **Strategic Recommendations**: Actionable advice for the business based on this data.

Tone: Professional, analytical, and concise. Use bolding for key metrics.`

const classifyPrompt = `You are an expert Customs Broker and Trade Compliance Specialist for India.

Task: Classify the following product and provide the HS Code (Harmonized System Code) and estimated duty details for import into India.

Product Description: "%s"

Return a STRICT JSON object with the following fields (no markdown, no explanations outside JSON):
{
  "hs_code": "The most likely 6 or 8 digit HS Code",
  "title": "Official or standard description for this HS Code",
  "duty_rate": "Estimated Basic Customs Duty (BCD) percentage (e.g., '10%%')",
  "gst_rate": "Estimated IGST percentage (e.g., '18%%')",
  "reasoning": "A brief explanation of why this code was chosen based on the description",
  "compliance_notes": "Any specific import restrictions, BIS requirements, or certifications needed (optional)"
}`

const sustainabilityPrompt = `You are a Supply Chain Sustainability Expert.

Analyze the following carbon footprint metrics for an import/export business:
- Total CO2 Emissions: %.2f tons
- Green Score: %d/100
- Potential Savings: %.2f tons
- Top Emitting Countries: %s
- Top Emitting Products: %s

Provide 3 specific, actionable, and high-impact recommendations to reduce their carbon footprint.
Focus on logistics optimization, mode switching (Air to Sea), or sourcing changes.

Return a STRICT JSON array of objects:
[
  {
    "title": "Short title of recommendation",
    "impact": "Estimated CO2 savings (e.g., 'Save ~15 tons')",
    "description": "One sentence explanation."
  }
]`

const opportunitiesPrompt = `You are a Global Trade Analyst and Market Researcher.

Task: Identify the top 3 high-demand international markets (countries) for export for EACH of the following products:
%s

For each opportunity, provide:
1. Target Country
2. Estimated Price Premium (percentage higher than global average)
3. Key Demand Driver (why is it in demand there?)
4. A brief strategy tip.

Return a STRICT JSON array of objects in this format:
[
  {
    "product": "Product Name",
    "opportunities": [
      {
        "country": "Country Name",
        "flag": "Country Code (2 letter ISO, e.g. US, AE)",
        "premium": "e.g. +15%%",
        "reason": "Short explanation of demand",
        "strategy": "One tip for entering this market"
      }
    ]
  }
]`

const chartPrompt = `You are a data visualization expert.

User Request: "%s"

Data Columns: %s

Sample Data (first 3 rows):
%s

Based on the user's request and the data structure, determine the best way to visualize this.

If the user's request CANNOT be answered by the provided data columns, or if the request is nonsensical,
return a JSON object with an "error" field explaining why.
Example: { "error": "The dataset does not contain information about weather. It only has: port, product, value." }

Otherwise, return a STRICT JSON object with the following fields (no markdown, no explanations):
{
  "chartType": "bar" | "line" | "pie" | "scatter" | "histogram",
  "xColumn": "name of the column for X axis (or labels)",
  "yColumn": "name of the column for Y axis (or values)",
  "aggregation": "sum" | "count" | "average" | "none",
  "title": "Chart Title",
  "xAxisLabel": "Label for X axis",
  "yAxisLabel": "Label for Y axis",
  "colors": ["hex code 1", "hex code 2"]
}

Rules:
- If the user asks for a count of items, use "count" aggregation.
- If the user asks for total/sum, use "sum".
- If "pie" chart, xColumn is the label (category) and yColumn is the value.
- If "scatter", usually "none" aggregation unless grouping is implied.`
