package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/good-yellow-bee/innohub/internal/models"
)

// TemplateProvider answers every intent from keyword templates. It never
// calls the network and never fails for a well-typed input.
type TemplateProvider struct{}

// Name returns "template".
func (TemplateProvider) Name() string { return string(SourceTemplate) }

// Generate renders the template result for req.Input as JSON text.
func (TemplateProvider) Generate(_ context.Context, req Request) (string, error) {
	var out any
	switch in := req.Input.(type) {
	case ValidateInput:
		out = validateTemplate(in)
	case RoadmapInput:
		out = roadmapTemplate(in)
	case LeanCanvasInput:
		out = leanCanvasTemplate(in)
	case PitchDeckInput:
		out = pitchDeckTemplate(in)
	case ChatInput:
		out = chatTemplate(in)
	default:
		return "", fmt.Errorf("no template for %s input %T", req.Intent, req.Input)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode %s template: %w", req.Intent, err)
	}
	return string(data), nil
}

// hashText returns a stable hash used where a varied but repeatable choice is needed.
func hashText(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

var validateRules = ruleSet[Validation]{
	rules: []rule[Validation]{
		{mustKeywords("environment", "eco"), addStrength("Sustainability focus is a strong trend")},
		{mustKeywords("ai", "smart"), addStrength("Leverages emerging tech")},
		{mustKeywords("social", "connect"), addStrength("Strong community potential")},
	},
}

func addStrength(s string) func(*Validation) {
	return func(v *Validation) {
		v.Analysis.Strengths = append(v.Analysis.Strengths, s)
	}
}

func validateTemplate(in ValidateInput) Validation {
	text := in.Idea + " " + in.Description
	v := Validation{
		// 75..94, repeatable for the same idea.
		ViabilityScore: 75 + int(hashText(strings.ToLower(text))%20),
		Analysis: Analysis{
			Strengths: []string{"Clear target audience", "Solves a real problem"},
			Weaknesses: []string{
				"Market competition needs analysis",
				"Customer acquisition strategy needed",
			},
			Suggestions: []string{
				"Start with an MVP focusing on core features",
				"Validate with potential users early",
			},
			MarketPotential: "Moderate to High",
		},
	}
	validateRules.apply(text, &v)
	return v
}

// roadmapPlan holds the two intent-specific phases of a roadmap.
type roadmapPlan struct {
	first, second           string
	firstSteps, secondSteps []string
}

var roadmapRules = ruleSet[roadmapPlan]{
	firstMatch: true,
	rules: []rule[roadmapPlan]{
		{mustKeywords("ai", "model"), func(p *roadmapPlan) {
			*p = roadmapPlan{
				first:       "Data & Model Training",
				firstSteps:  []string{"Data Collection", "Model Selection & Training", "Baseline Evaluation"},
				second:      "Integration & API",
				secondSteps: []string{"Model Wrapping", "API Development", "Latency Optimization"},
			}
		}},
		{mustKeywords("mobile", "app"), func(p *roadmapPlan) {
			*p = roadmapPlan{
				first:       "Prototype & Design",
				firstSteps:  []string{"Wireframing", "UI/UX Design", "Frontend Development"},
				second:      "Backend & Launch",
				secondSteps: []string{"API Integration", "App Store Submission", "User Onboarding Flow"},
			}
		}},
	},
	otherwise: func(p *roadmapPlan) {
		*p = roadmapPlan{
			first:       "Concept & MVP",
			firstSteps:  []string{"Market Research", "Core Features Dev", "Alpha Testing"},
			second:      "Launch",
			secondSteps: []string{"Beta Release", "Feedback Loop", "Marketing Setup"},
		}
	},
}

func roadmapTemplate(in RoadmapInput) Roadmap {
	var plan roadmapPlan
	roadmapRules.apply(strings.Join([]string{in.Title, in.Type, in.Description}, " "), &plan)

	title := in.Title
	if title == "" {
		title = "Project"
	}
	return Roadmap{
		Title: "Roadmap for " + title,
		Phases: []Phase{
			{Name: "Phase 1: " + plan.first, Duration: "4 Weeks", Steps: plan.firstSteps},
			{Name: "Phase 2: " + plan.second, Duration: "4 Weeks", Steps: plan.secondSteps},
			{Name: "Phase 3: Scale & Growth", Duration: "Ongoing", Steps: []string{"Feature Expansion", "User Scaling", "Monetization"}},
		},
	}
}

var leanCanvasRules = ruleSet[models.LeanCanvas]{
	rules: []rule[models.LeanCanvas]{
		{mustKeywords("ai", "artificial intelligence", "machine learning"), func(c *models.LeanCanvas) {
			c.Solution = "AI-powered platform leveraging machine learning algorithms"
			c.UniqueValue = "Advanced AI technology that adapts and learns"
			c.UnfairAdvantage = "Proprietary AI algorithms and data"
		}},
		{mustKeywords("skill", "learn", "education", "course"), func(c *models.LeanCanvas) {
			c.Problem = "Students and professionals struggle to identify relevant skills and learning paths aligned with market demands"
			c.Solution = "AI-driven personalized learning platform that analyzes skills, career goals, and industry trends"
			c.CustomerSegments = "Students, professionals seeking career advancement, and companies looking for skilled talent"
			c.KeyMetrics = "User growth, course completion rates, skill verification, job placement rates"
			c.Channels = "Online marketing, partnerships with educational institutions, LinkedIn, job boards"
			c.RevenueStreams = "Subscription fees, course sales, premium features, corporate partnerships"
			c.CostStructure = "Platform development, AI infrastructure, content creation, marketing"
			c.UniqueValue = "Real-time job market integration and personalized skill recommendations"
			c.UnfairAdvantage = "Proprietary algorithm that continuously adapts to market trends"
		}},
		{mustKeywords("market", "job"), func(c *models.LeanCanvas) {
			c.Channels = "Online platforms, social media, partnerships with employers"
		}},
	},
}

func leanCanvasTemplate(in LeanCanvasInput) models.LeanCanvas {
	c := models.LeanCanvas{
		Problem:          "Identify the top 3 problems your customers face",
		Solution:         "Describe your unique solution approach",
		KeyMetrics:       "What metrics will you track? (e.g., user growth, revenue)",
		UniqueValue:      "What makes your solution unique?",
		UnfairAdvantage:  "What can't be easily copied?",
		Channels:         "How will you reach customers?",
		CustomerSegments: "Who are your target customers?",
		CostStructure:    "What are your main costs?",
		RevenueStreams:   "How will you make money?",
	}
	leanCanvasRules.apply(string(in.Conversation), &c)

	if d := in.ProjectData; d != nil {
		override(&c.Problem, d.Problem)
		override(&c.Solution, d.Solution)
		override(&c.KeyMetrics, d.KeyMetrics)
		override(&c.UniqueValue, d.UniqueValue)
		override(&c.UnfairAdvantage, d.UnfairAdvantage)
		override(&c.Channels, d.Channels)
		override(&c.CustomerSegments, d.CustomerSegments)
		override(&c.CostStructure, d.CostStructure)
		override(&c.RevenueStreams, d.RevenueStreams)
	}
	return c
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

var pitchDeckRules = ruleSet[PitchDeck]{
	firstMatch: true,
	rules: []rule[PitchDeck]{
		{mustKeywords("skill", "learn", "education"), func(d *PitchDeck) {
			d.Problem = "Students and professionals struggle to identify relevant skills and learning paths aligned with market demands. Traditional education systems don't adapt quickly to industry needs, leaving skill gaps."
			d.Solution = "AI-driven personalized learning platform that analyzes individual skills, career goals, and real-time industry trends to recommend optimal learning paths and certifications."
			d.Market = "The global online education market is valued at $350B+ and growing at 9% annually. With 70% of professionals seeking skill upgrades, there's massive demand for personalized learning solutions."
			d.BusinessModel = "Freemium SaaS model: Free basic access, Premium subscriptions ($29/month), Enterprise partnerships, Course marketplace commissions (20-30%), Certification fees."
			d.Traction = "Currently in MVP phase with 500+ beta users, partnerships with 3 educational institutions, and integration with major job platforms."
			d.Team = "Experienced team of 8 with backgrounds in AI/ML, education technology, and business development."
			d.Ask = "Seeking $500K seed funding to scale platform, expand content library, and accelerate user acquisition."
		}},
		{mustKeywords("ai", "artificial intelligence"), func(d *PitchDeck) {
			d.Problem = "Businesses struggle to leverage AI effectively due to complexity, high costs, and lack of expertise."
			d.Solution = "AI-powered platform that makes advanced AI accessible through intuitive interfaces and automated workflows."
			d.Market = "The AI market is projected to reach $1.8T by 2030. Small and medium businesses represent a $200B+ opportunity."
			d.BusinessModel = "SaaS subscriptions ($99-$999/month tiers), API usage fees, Enterprise contracts, White-label licensing."
			d.Traction = "Launched 6 months ago with 200+ active customers, $50K MRR, and 95% customer satisfaction."
			d.Team = "Team of 12 including AI researchers, software engineers, and sales professionals."
			d.Ask = "Raising $2M Series A to expand engineering team, enhance AI capabilities, and scale marketing."
		}},
	},
	otherwise: func(d *PitchDeck) {
		d.Problem = "Current solutions in the market are inefficient, expensive, or don't address core customer needs effectively."
		d.Solution = d.Title + " provides an innovative approach that solves these challenges through technology and user-centric design."
		d.Market = "The target market represents a significant opportunity with growing demand and limited effective solutions."
		d.BusinessModel = "Revenue streams include subscription fees, transaction commissions, premium features, and enterprise licensing."
		d.Traction = "Early traction includes initial user base, positive feedback, and key partnerships in development."
		d.Team = "Experienced founding team with relevant industry expertise and proven track record."
		d.Ask = "Seeking funding to accelerate product development, expand team, and scale operations."
	},
}

func pitchDeckTemplate(in PitchDeckInput) PitchDeck {
	data := ProjectData{}
	if in.ProjectData != nil {
		data = *in.ProjectData
	}

	d := PitchDeck{Title: data.Title}
	if strings.TrimSpace(d.Title) == "" {
		d.Title = "Your Startup Name"
	}
	pitchDeckRules.apply(data.Description, &d)

	override(&d.Problem, data.Problem)
	override(&d.Solution, data.Solution)
	override(&d.Market, data.Market)
	override(&d.BusinessModel, data.BusinessModel)
	override(&d.Traction, data.Traction)
	override(&d.Team, data.Team)
	override(&d.Ask, data.Ask)
	return d
}

var chatReplies = []string{
	"That's an interesting angle. Have you considered how this scales to 10,000 users?",
	"Based on what you're building, I'd suggest focusing on the MVP features first.",
	"I can see this working well. Don't forget to validate your assumptions with real users.",
	"Great progress! Maybe look into potential partnerships for this stage.",
	"From a technical standpoint, ensure your architecture handles real-time data efficiently.",
}

func chatTemplate(in ChatInput) ChatReply {
	return ChatReply{
		Reply:      chatReplies[hashText(in.Message)%uint32(len(chatReplies))],
		Suggestion: "Would you like to generate a tasks list for this?",
	}
}
