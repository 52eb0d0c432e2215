package scope

import (
	"strings"

	"github.com/fyrsmithlabs/coachd/internal/analysis"
	"github.com/fyrsmithlabs/coachd/internal/checkin"
)

// Topic groups cluster behaviors into the vocabulary users actually write
// notes in. The same table backs the note filter and the topic-drift check.
const (
	TopicSleep     = "sleep"
	TopicNutrition = "nutrition"
	TopicHydration = "hydration"
	TopicMovement  = "movement"
	TopicMindset   = "mindset"
)

var behaviorTopics = map[checkin.Behavior]string{
	checkin.BehaviorSleep:         TopicSleep,
	checkin.BehaviorNutrition:     TopicNutrition,
	checkin.BehaviorEnergyBalance: TopicNutrition,
	checkin.BehaviorProtein:       TopicNutrition,
	checkin.BehaviorHydration:     TopicHydration,
	checkin.BehaviorMovement:      TopicMovement,
	checkin.BehaviorMindset:       TopicMindset,
}

var topicKeywords = map[string][]string{
	TopicSleep: {
		"sleep", "slept", "bed", "bedtime", "tired", "exhausted", "nap",
		"insomnia", "rest", "woke",
	},
	TopicNutrition: {
		"food", "eat", "eating", "ate", "meal", "snack", "diet", "calorie",
		"protein", "hungry", "takeout", "cooking",
	},
	TopicHydration: {
		"water", "hydration", "hydrated", "thirsty", "drink",
	},
	TopicMovement: {
		"workout", "gym", "run", "running", "exercise", "training", "lift",
		"walk", "steps", "cardio",
	},
	TopicMindset: {
		"stress", "stressed", "anxious", "anxiety", "mood", "mindset",
		"meditation", "overwhelmed", "focus",
	},
}

// BehaviorTopic returns the note-vocabulary topic for a behavior.
func BehaviorTopic(b checkin.Behavior) string {
	return behaviorTopics[b]
}

// TopicKeywords returns the keyword list for a topic.
func TopicKeywords(topic string) []string {
	return topicKeywords[topic]
}

// ConstraintTopics returns the topics covered by the limiter's constraint
// behaviors. The progression limiter covers every topic.
func ConstraintTopics(limiter analysis.Limiter) map[string]bool {
	topics := make(map[string]bool)
	behaviors := limiterBehaviors[limiter]
	if limiter == analysis.LimiterProgression {
		behaviors = checkin.Behaviors()
	}
	for _, b := range behaviors {
		topics[BehaviorTopic(b)] = true
	}
	return topics
}

// DriftKeywords returns the banned topic words for a limiter: every keyword
// belonging to a topic outside the constraint. Generated text mentioning
// any of them has drifted off the scoped subject.
func DriftKeywords(limiter analysis.Limiter) []string {
	constraint := ConstraintTopics(limiter)
	var banned []string
	for topic, words := range topicKeywords {
		if constraint[topic] {
			continue
		}
		banned = append(banned, words...)
	}
	return banned
}

// topicHits reports which topics a note mentions, by whole-word keyword
// match on the lowercased text.
func topicHits(note string) map[string]bool {
	words := tokenize(note)
	hits := make(map[string]bool)
	for topic, keywords := range topicKeywords {
		for _, kw := range keywords {
			if words[kw] {
				hits[topic] = true
				break
			}
		}
	}
	return hits
}

func tokenize(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		words[w] = true
	}
	return words
}
