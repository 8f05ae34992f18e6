package docs

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const guideDir = "guide"

// ErrUnknownTopic is returned by Read for a topic that does not exist.
var ErrUnknownTopic = errors.New("unknown guide topic")

// Topic is one guide page.
type Topic struct {
	Name  string `json:"name"`  // file name without .md
	Title string `json:"title"` // first heading, or Name when there is none
}

// Topics lists the guide pages in name order.
func Topics() ([]Topic, error) {
	entries, err := fs.ReadDir(FS, guideDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read guide: %w", err)
	}

	topics := make([]Topic, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".md" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".md")
		content, err := fs.ReadFile(FS, path.Join(guideDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read guide topic %s: %w", name, err)
		}
		title := FirstHeading(content)
		if title == "" {
			title = name
		}
		topics = append(topics, Topic{Name: name, Title: title})
	}

	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics, nil
}

// Read returns the Markdown source of topic. Names are matched case-insensitively.
func Read(topic string) (string, error) {
	name := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(topic), ".md"))
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w %q", ErrUnknownTopic, topic)
	}
	content, err := fs.ReadFile(FS, path.Join(guideDir, name+".md"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w %q", ErrUnknownTopic, topic)
		}
		return "", fmt.Errorf("failed to read guide topic %s: %w", name, err)
	}
	return string(content), nil
}

// FirstHeading returns the text of the first heading in content.
func FirstHeading(content []byte) string {
	doc := goldmark.New().Parser().Parse(text.NewReader(content))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var b strings.Builder
		for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
			if t, ok := child.(*ast.Text); ok {
				b.Write(t.Segment.Value(content))
			}
		}
		if title = strings.TrimSpace(b.String()); title == "" {
			return ast.WalkContinue, nil
		}
		return ast.WalkStop, nil
	})
	return title
}
