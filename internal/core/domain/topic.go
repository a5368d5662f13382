package domain

import "strings"

// DefaultTopic is assigned when no filename rule matches.
const DefaultTopic = "general"

// topicRules maps filename fragments to topics. Order matters: first match wins.
var topicRules = []struct {
	fragments []string
	topic     string
}{
	{[]string{"return"}, "returns"},
	{[]string{"shipping"}, "shipping"},
	{[]string{"faq", "customer"}, "support"},
	{[]string{"privacy", "terms"}, "legal"},
	{[]string{"product", "care", "size"}, "products"},
	{[]string{"payment", "gift"}, "payments"},
	{[]string{"security"}, "security"},
	{[]string{"loyalty"}, "rewards"},
	{[]string{"warranty"}, "warranties"},
	{[]string{"international"}, "shipping"},
}

// TopicForFilename derives a document topic from its filename.
func TopicForFilename(filename string) string {
	name := strings.ToLower(filename)
	for _, rule := range topicRules {
		for _, fragment := range rule.fragments {
			if strings.Contains(name, fragment) {
				return rule.topic
			}
		}
	}
	return DefaultTopic
}
