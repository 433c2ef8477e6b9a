// Package docs holds the user documentation of the bill command, one markdown
// file per topic. The examples it contains are run by the tests.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// readme introduces the topics, it is not a topic itself.
const readme = "readme"

// GetTopic returns the markdown content of a topic. "*" stands for all topics.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		all, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(all...)
	}

	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		all, _ := GetAllTopics()
		return "", fmt.Errorf("topic %q not found, available topics are %s", topic, strings.Join(all, ", "))
	}
	return string(content), nil
}

// GetTopics returns the content of the topics, in order, separated by an
// empty line.
func GetTopics(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics returns the names of all topics, sorted.
func GetAllTopics() ([]string, error) {
	files, err := fs.Glob(docs, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, file := range files {
		if name := strings.TrimSuffix(path.Base(file), ".md"); name != readme {
			topics = append(topics, name)
		}
	}
	slices.Sort(topics)
	return topics, nil
}
