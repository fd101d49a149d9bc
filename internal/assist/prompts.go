package assist

import "fmt"

func validatePrompt(in ValidateInput) string {
	return fmt.Sprintf(`Analyze this startup idea: %q. Description: %q.
Provide a JSON response with the following structure:
{
    "viabilityScore": integer (0-100),
    "analysis": {
        "strengths": [string array],
        "weaknesses": [string array],
        "suggestions": [string array],
        "marketPotential": string
    }
}
Do not include markdown formatting.`, in.Idea, in.Description)
}

func roadmapPrompt(in RoadmapInput) string {
	return fmt.Sprintf(`Create a detailed 3-phase launch roadmap for a specific project: %q (%s).
Description context: %q.
Generate highly specific steps relevant to this exact project type, not generic ones.
Provide a JSON response with structure:
{
    "title": string,
    "phases": [
        { "name": string, "duration": string, "steps": [string array of 3-4 specific items] }
    ]
}
Do not include markdown formatting.`, in.Title, in.Type, in.Description)
}

func leanCanvasPrompt(in LeanCanvasInput) string {
	return fmt.Sprintf(`Based on this conversation about a startup idea: %q,
generate a comprehensive Lean Canvas in JSON format:
{
    "problem": string (describe the top 3 problems customers face),
    "solution": string (describe your unique solution),
    "keyMetrics": string (what metrics will you track),
    "uniqueValue": string (what makes your solution unique),
    "unfairAdvantage": string (what can't be easily copied),
    "channels": string (how will you reach customers),
    "customerSegments": string (who are your target customers),
    "costStructure": string (what are your main costs),
    "revenueStreams": string (how will you make money)
}
Return ONLY valid JSON, no markdown formatting, no code blocks.`, string(in.Conversation))
}

func pitchDeckPrompt(in PitchDeckInput) string {
	title, description := "Startup", ""
	if d := in.ProjectData; d != nil {
		if d.Title != "" {
			title = d.Title
		}
		description = d.Description
	}
	return fmt.Sprintf(`Create a pitch deck for: %q.
Description: %q.
Provide JSON response:
{
    "title": string,
    "problem": string,
    "solution": string,
    "market": string,
    "businessModel": string,
    "traction": string,
    "team": string,
    "ask": string
}
Return ONLY valid JSON, no markdown formatting, no code blocks.`, title, description)
}

func chatPrompt(in ChatInput) string {
	page, role := in.Context.Page, in.Context.Role
	if page == "" {
		page = "Unknown"
	}
	if role == "" {
		role = "Founder"
	}
	return fmt.Sprintf(`You are an experienced, encouraging, and strategic Startup Co-Founder AI.
User is currently on page: %q.
User Role: %q.

User says: %q

Provide a helpful, concise response (max 2-3 sentences).
Then offer one short, actionable strategic suggestion.
Return JSON: { "reply": string, "suggestion": string }`, page, role, in.Message)
}
