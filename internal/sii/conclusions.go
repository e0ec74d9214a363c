package sii

import "github.com/sii-blood-analyzer/internal/domain"

// RecommendationGroup is one named set of follow-up actions for a risk
// tier. Tiers carry several groups and narrative rendering picks one,
// so repeated reports for the same patient read less mechanically.
type RecommendationGroup struct {
	Title string
	Items []string
}

// Conclusion holds the report text for one risk tier.
type Conclusion struct {
	Title   string
	Summary string
	Groups  []RecommendationGroup
}

// conclusionByLevel maps each risk tier to its report text.
var conclusionByLevel = map[domain.RiskLevel]Conclusion{
	domain.RiskVeryLow: {
		Title: "Very low risk",
		Summary: "Monitoring the effectiveness of your body's antitumor immunity. " +
			"A very low value can reflect a marked drop in leukocytes, neutrophils or platelets, " +
			"for example after chemotherapy or in aplastic states, and sometimes a laboratory error. " +
			"An isolated low result is not always dangerous and must be read in the context of " +
			"current treatment, wellbeing and other tests.",
		Groups: []RecommendationGroup{
			{
				Title: "Follow-up",
				Items: []string{
					"Monitor blood counts over time",
					"See a physician to establish the cause of the changes",
					"Do not interpret a single low result in isolation",
				},
			},
			{
				Title: "Routine monitoring",
				Items: []string{
					"Continue regular preventive check-ups",
					"Maintain a healthy lifestyle",
					"Repeat blood work every 6-12 months",
				},
			},
		},
	},
	domain.RiskLow: {
		Title: "Low risk",
		Summary: "Monitoring the effectiveness of your body's antitumor immunity. " +
			"The balance between inflammation and immunity is considered normal. The prognosis is favorable.",
		Groups: []RecommendationGroup{
			{
				Title: "Recommendations",
				Items: []string{
					"Control blood test every 3-4 weeks",
					"Keep up the usual lifestyle: physical activity, sleep, nutrition, a positive outlook",
					"Balanced diet with vegetables, fruits and whole grains",
					"Laboratory tests on the schedule agreed with your physician",
					"Avoid self-medication and new drugs without physician approval",
				},
			},
			{
				Title: "Routine monitoring",
				Items: []string{
					"Repeat blood counts every 6 months",
					"Stay physically active",
					"Watch nutrition and sleep",
				},
			},
		},
	},
	domain.RiskModerate: {
		Title: "Moderate risk (borderline state)",
		Summary: "Moderate inflammation and/or a reduced immune response. The prognosis is uncertain: " +
			"complications, onset of progression or an unstable state are possible.",
		Groups: []RecommendationGroup{
			{
				Title: "Recommendations",
				Items: []string{
					"Repeat the blood test in 7-14 days",
					"Consult your attending physician",
					"Watch symptoms and overall wellbeing",
					"Control cholesterol and blood sugar",
					"Avoid fatty and processed food",
					"Pay attention to appetite, weight, sleep and recent infections",
				},
			},
			{
				Title: "Medical observation",
				Items: []string{
					"Control blood counts every 3-6 months",
					"Consult an oncologist",
					"Consider an anti-inflammatory diet",
				},
			},
		},
	},
	domain.RiskBorderlineHigh: {
		Title: "High risk (alarming level)",
		Summary: "A high level of inflammation and reduced immunity. " +
			"There is a risk of progression and complications.",
		Groups: []RecommendationGroup{
			{
				Title: "Recommendations",
				Items: []string{
					"Urgent consultation with an oncologist",
					"Further work-up: CT/MRI, tumor markers",
					"Blood and biochemistry control at least once a week",
					"Inform your physician about any change in condition",
					"Avoid self-medication",
					"Revise the treatment plan if needed",
				},
			},
			{
				Title: "Intensified monitoring",
				Items: []string{
					"Regular monitoring every 3 months",
					"Mandatory oncologist consultation",
					"Consider additional examinations",
				},
			},
		},
	},
	domain.RiskHigh: {
		Title: "Very high risk (critical)",
		Summary: "A critically high level of inflammation and immune suppression. " +
			"The risk of deterioration is maximal.",
		Groups: []RecommendationGroup{
			{
				Title: "Recommendations",
				Items: []string{
					"Immediate in-person consultation with an oncologist",
					"Complete examination",
					"Weekly or more frequent blood and biochemistry monitoring",
					"Round-the-clock observation",
					"An individual emergency action plan",
					"Special therapeutic nutrition",
					"Temperature and wellbeing control",
				},
			},
			{
				Title: "Urgent measures",
				Items: []string{
					"Immediate oncologist consultation",
					"Monthly blood count control",
					"Comprehensive examination is required",
				},
			},
		},
	},
}

// genericMeaning is the tier description used when no cancer code was
// supplied and classification fell back to the generic scale.
var genericMeaning = map[domain.RiskLevel]string{
	domain.RiskVeryLow: "Balanced state. The most favorable profile: high immune activity " +
		"and a low inflammatory background.",
	domain.RiskLow: "Immune status preserved. No signs of active inflammation, " +
		"a good prognostic group in oncology patients.",
	domain.RiskModerate: "Potential immune system activation. Subclinical inflammatory " +
		"processes are possible, repeat testing is needed.",
	domain.RiskBorderlineHigh: "Moderate inflammation. Associated with elevated risk " +
		"in oncologic and chronic patients.",
	domain.RiskHigh: "Active inflammation or immune exhaustion. High mortality risk and " +
		"poor treatment response, requires immediate intervention.",
}
