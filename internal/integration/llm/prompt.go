package llm

import (
	"strings"

	"github.com/futig/idea-validator/internal/entity"
)

const (
	// Temperature and MaxTokens are fixed for every provider
	Temperature = 0.7
	MaxTokens   = 2000
)

const systemPrompt = "You are an expert business analyst and entrepreneur with deep experience in evaluating business ideas across various industries. Provide thorough, honest, and actionable feedback."

// ideaPlaceholder is replaced verbatim, the idea is not escaped
const ideaPlaceholder = "{{business_idea}}"

// The reply shape below is what the normalizer expects. Changing it is a
// breaking change for evaluation.Normalize.
const userPromptTemplate = `Please analyze the following business idea and provide scores and detailed reasoning for three key criteria:

Business Idea: {{business_idea}}

Evaluate the idea on:
1. Profitability (0-10): How likely is this idea to generate significant revenue and profit?
2. Market Demand (0-10): How strong is the potential market demand for this product/service?
3. Execution Ease (0-10): How easy would it be to execute and implement this idea?

For each criterion, provide:
- A score from 0-10 (where 10 is excellent)
- Detailed reasoning explaining the score
- Specific strengths and weaknesses
- Actionable recommendations for improvement

Respond with a JSON object in this exact format:
{
    "profitability": {
        "score": number,
        "reasoning": "detailed explanation",
        "strengths": ["strength1", "strength2"],
        "weaknesses": ["weakness1", "weakness2"],
        "recommendations": ["recommendation1", "recommendation2"]
    },
    "demand": {
        "score": number,
        "reasoning": "detailed explanation",
        "strengths": ["strength1", "strength2"],
        "weaknesses": ["weakness1", "weakness2"],
        "recommendations": ["recommendation1", "recommendation2"]
    },
    "execution": {
        "score": number,
        "reasoning": "detailed explanation",
        "strengths": ["strength1", "strength2"],
        "weaknesses": ["weakness1", "weakness2"],
        "recommendations": ["recommendation1", "recommendation2"]
    },
    "overall_assessment": "brief overall summary and final thoughts",
    "overall_score": number
}`

// BuildPrompt embeds a validated idea into the fixed evaluation instructions
func BuildPrompt(idea string) entity.Prompt {
	return entity.Prompt{
		System: systemPrompt,
		User:   strings.Replace(userPromptTemplate, ideaPlaceholder, idea, 1),
	}
}
