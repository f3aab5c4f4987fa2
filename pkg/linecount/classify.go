// Package linecount decides which lines of a text file count toward writing
// progress and counts them.
package linecount

import "strings"

// DefaultCommentMarker is the line-comment prefix of LaTeX sources.
const DefaultCommentMarker = "%"

// Classifier reports whether a line is a content line: non-blank and not a
// comment. An empty CommentMarker disables the comment rule.
type Classifier struct {
	CommentMarker string
}

// Default returns a Classifier using DefaultCommentMarker.
func Default() Classifier {
	return Classifier{CommentMarker: DefaultCommentMarker}
}

// IsContentLine reports whether line counts toward progress. The blank check
// runs before the comment check.
func (c Classifier) IsContentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if c.CommentMarker != "" && strings.HasPrefix(trimmed, c.CommentMarker) {
		return false
	}
	return true
}

// IsContentLine classifies line with the default comment marker.
func IsContentLine(line string) bool {
	return Default().IsContentLine(line)
}
