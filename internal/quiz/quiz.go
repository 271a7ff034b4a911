// Package quiz holds the financial stress self-assessment: ten fixed
// questions, each answered on a 1-5 scale (least to most stress), scored
// by plain average into one of five tiers. Everything here is data plus
// one pure function; there is no state.
package quiz

import (
	appErrors "github.com/mindmoney/mindmoney/customErrors"
)

const (
	QuestionCount = 10
	MinAnswer     = 1
	MaxAnswer     = 5
)

type Question struct {
	Category string
	Text     string
	Options  []string
}

type Level struct {
	Name    string
	Tone    string
	Message string
	Tips    []string
}

type Result struct {
	Total        int
	Average      float64
	Level        Level
	Scores       []int
	NeedsSupport bool
}

var questions = []Question{
	{
		Category: "Income vs Expenses",
		Text:     "How often do you struggle to pay all your monthly bills on time?",
		Options:  []string{"Never", "Rarely", "Sometimes", "Often", "Always"},
	},
	{
		Category: "Emergency Fund",
		Text:     "If you had an unexpected expense of $500, how would you handle it?",
		Options: []string{
			"Easily cover with savings",
			"Cover with small adjustments",
			"Use partial savings/credit",
			"Mostly credit/loan",
			"Impossible without major stress",
		},
	},
	{
		Category: "Monthly Budget",
		Text:     "How much of your income goes to fixed monthly expenses?",
		Options: []string{
			"Less than 20%",
			"20-40%",
			"40-60%",
			"60-80%",
			"More than 80%",
		},
	},
	{
		Category: "Credit & Debt",
		Text:     "How much stress do your monthly debt payments cause you?",
		Options: []string{
			"None at all",
			"Very little",
			"Some",
			"Quite a lot",
			"Extreme stress",
		},
	},
	{
		Category: "Food & Groceries",
		Text:     "How often do you worry about affording groceries and food?",
		Options:  []string{"Never", "Rarely", "Sometimes", "Often", "Always"},
	},
	{
		Category: "Transportation",
		Text:     "How stressful are your monthly transportation costs?",
		Options: []string{
			"Not stressful",
			"Slightly stressful",
			"Moderately stressful",
			"Very stressful",
			"Extremely stressful",
		},
	},
	{
		Category: "Healthcare",
		Text:     "How do healthcare and medical expenses affect your monthly budget?",
		Options: []string{
			"No impact",
			"Minimal impact",
			"Some impact",
			"Large impact",
			"Severe impact",
		},
	},
	{
		Category: "Savings & Future",
		Text:     "How much are you able to save each month?",
		Options:  []string{"A lot", "Some", "A little", "Almost nothing", "None at all"},
	},
	{
		Category: "Sleep & Mental Health",
		Text:     "How often do money worries keep you awake at night?",
		Options:  []string{"Never", "Rarely", "Sometimes", "Often", "Always"},
	},
	{
		Category: "Overall Control",
		Text:     "How in control do you feel about your monthly financial situation?",
		Options: []string{
			"Completely in control",
			"Mostly in control",
			"Somewhat in control",
			"Rarely in control",
			"Not at all in control",
		},
	},
}

var levels = []Level{
	{
		Name:    "Very Low Stress",
		Tone:    "success",
		Message: "Excellent financial health! Keep doing what you're doing and consider optimizing savings/investments.",
		Tips: []string{
			"Maintain your emergency fund (3-6 months).",
			"Automate savings and investments.",
			"Review insurance and subscriptions annually.",
			"Set new financial goals to stay motivated.",
		},
	},
	{
		Name:    "Low Stress",
		Tone:    "info",
		Message: "You're managing well with minor concerns. Keep building good habits and fine-tune your budget.",
		Tips: []string{
			"Increase your savings rate gradually.",
			"Track small leaks (fees, unused subscriptions).",
			"Plan for upcoming large expenses.",
			"Rebalance spending categories quarterly.",
		},
	},
	{
		Name:    "Moderate Stress",
		Tone:    "warn",
		Message: "You're feeling some pressure. There's room to improve budgeting and reduce avoidable costs.",
		Tips: []string{
			"Create a zero-based budget and track weekly.",
			"Cut 1-2 non-essential categories for 60 days.",
			"Snowball or avalanche high-interest debts.",
			"Build an emergency fund, even small steps count.",
		},
	},
	{
		Name:    "High Stress",
		Tone:    "danger",
		Message: "Significant stress detected. Take action to reduce expenses and explore ways to increase income.",
		Tips: []string{
			"List and pause non-essential spending immediately.",
			"Call providers to negotiate bills and rates.",
			"Consider temporary extra income (freelance/part-time).",
			"Prioritize high-interest debt repayment.",
		},
	},
	{
		Name:    "Very High Stress",
		Tone:    "critical",
		Message: "Severe financial stress. Seek professional counseling and support resources as soon as possible.",
		Tips: []string{
			"Contact a nonprofit credit counselor for a plan.",
			"Ask creditors about hardship options.",
			"Check local assistance (food, utilities, housing).",
			"Focus on essentials first: food, shelter, utilities.",
		},
	},
}

// Questions returns the fixed questionnaire. Callers get a copy of the
// slice header; the backing data is never mutated.
func Questions() []Question {
	return questions
}

// LevelFor maps an average score to its tier. Bands are closed on the
// upper side: 1.5 is still Very Low, 3.5 still Moderate.
func LevelFor(avg float64) Level {
	switch {
	case avg <= 1.5:
		return levels[0]
	case avg <= 2.5:
		return levels[1]
	case avg <= 3.5:
		return levels[2]
	case avg <= 4.5:
		return levels[3]
	default:
		return levels[4]
	}
}

// Score grades a fully answered questionnaire. Every question must carry
// an answer in [1,5]; a partial vector is rejected, not padded.
func Score(answers []int) (Result, error) {
	if len(answers) != len(questions) {
		return Result{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Please answer all questions before submitting.",
		}
	}

	total := 0
	for _, answer := range answers {
		if answer < MinAnswer || answer > MaxAnswer {
			return Result{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrInvalidInput,
				Message: "Please answer all questions before submitting.",
			}
		}
		total += answer
	}

	avg := float64(total) / float64(len(questions))
	scores := make([]int, len(answers))
	copy(scores, answers)

	return Result{
		Total:        total,
		Average:      avg,
		Level:        LevelFor(avg),
		Scores:       scores,
		NeedsSupport: avg > 3.5,
	}, nil
}
