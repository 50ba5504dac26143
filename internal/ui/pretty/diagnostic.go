package pretty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/ustree/pkg/unist"
)

// Severity is the severity of a notice.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notice is a located message about an input, such as a construct that
// was dropped while parsing.
type Notice struct {
	FilePath string
	Line     int
	Column   int
	Severity Severity
	Message  string
}

// FormatNotice formats a single notice for terminal output. When
// sourceLine is non-empty it is shown under the notice with a caret.
func (s *Styles) FormatNotice(n Notice, sourceLine string) string {
	var builder strings.Builder

	location := s.FilePath.Render(n.FilePath)
	if n.Line > 0 {
		location += s.Location.Render(fmt.Sprintf(":%d:%d", n.Line, n.Column))
	}

	builder.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		location,
		s.FormatSeverity(n.Severity),
		s.Message.Render(n.Message),
	))

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, n.Column))
	}

	return builder.String()
}

// FormatValidationError formats a tree validation failure. The error
// path, if any, is kept in front of the node details.
func (s *Styles) FormatValidationError(path string, err error) string {
	var verr *unist.ValidationError
	if !errors.As(err, &verr) {
		return s.FormatNotice(Notice{FilePath: path, Severity: SeverityError, Message: err.Error()}, "")
	}

	var details []string
	if verr.NodeType != "" {
		details = append(details, s.Field.Render("node=")+verr.NodeType)
	}
	if verr.Field != "" {
		details = append(details, s.Field.Render("field=")+verr.Field)
	}
	if verr.Index != unist.NoIndex {
		details = append(details, s.Field.Render("index=")+fmt.Sprint(verr.Index))
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		s.FilePath.Render(path),
		s.FormatSeverity(SeverityError),
		s.Message.Render(err.Error()),
	))
	if len(details) > 0 && verr.Code != nil {
		builder.WriteString("    " + s.Dim.Render(verr.Code.Error()) + "  " + strings.Join(details, " ") + "\n")
	}
	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev Severity) string {
	switch sev {
	case SeverityError:
		return s.Error.Render("error")
	case SeverityWarning:
		return s.Warning.Render("warning")
	case SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, noticeCount int) string {
	header := s.FilePath.Render(path)
	if noticeCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d notices)", noticeCount))
	}
	return header
}
