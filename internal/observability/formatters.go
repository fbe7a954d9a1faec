// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobboard/internal/jobform"
	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/jonathan/jobboard/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// listBlock writes up to limit items under a heading.
func listBlock(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintJobRecord outputs a human-readable summary of a job posting.
func (p *Printer) PrintJobRecord(rec *types.JobRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Type:      %s, %s\n", rec.JobType, rec.WorkArrangement))
	sb.WriteString(fmt.Sprintf("Location:  %s\n", rec.JobLocation))
	if rec.Salary.Min > 0 || rec.Salary.Max > 0 {
		sb.WriteString(fmt.Sprintf("Salary:    %.0f-%.0f %s %s\n", rec.Salary.Min, rec.Salary.Max, rec.Salary.Currency, rec.Salary.Period))
	}
	if !rec.ApplicationDeadline.IsZero() {
		sb.WriteString(fmt.Sprintf("Deadline:  %s\n", rec.ApplicationDeadline.Format("2006-01-02 15:04 MST")))
	}
	if rec.JobStatus != "" {
		sb.WriteString(fmt.Sprintf("Status:    %s\n", rec.JobStatus))
	}
	sb.WriteString("\n")

	req := rec.JobDescription.Requirements
	sb.WriteString(fmt.Sprintf("Experience Required: %d years\n", req.Experience))
	if req.Education != "" {
		sb.WriteString(fmt.Sprintf("Education: %s\n", req.Education))
	}
	sb.WriteString("\n")
	listBlock(&sb, "Skills", req.Skills, maxItemsToShow)
	listBlock(&sb, "Certifications", req.Certifications, 3)

	p.printBox(fmt.Sprintf("%s at %s", rec.JobTitle, rec.Company), strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintEdits outputs the edits applied to a form before submission.
func (p *Printer) PrintEdits(edits []jobform.Edit) {
	if len(edits) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Applied %d edits:\n\n", len(edits)))
	for _, e := range edits {
		switch e.Op {
		case jobform.OpSet:
			sb.WriteString(fmt.Sprintf("%s = %q\n", e.Path, e.Value))
		case jobform.OpAddItem:
			sb.WriteString(fmt.Sprintf("%s += \"\"\n", e.Path))
		case jobform.OpSetItem:
			sb.WriteString(fmt.Sprintf("%s[%d] = %q\n", e.Path, e.Index, e.Value))
		case jobform.OpRemoveItem:
			sb.WriteString(fmt.Sprintf("%s[%d] removed\n", e.Path, e.Index))
		default:
			sb.WriteString(fmt.Sprintf("%s %s\n", e.Op, e.Path))
		}
	}

	p.printBox("FORM EDITS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintUpload outputs the descriptor of a stored document.
func (p *Printer) PrintUpload(desc *types.UploadDescriptor) {
	if desc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:  %s (%d bytes)\n", desc.Filename, desc.FileSize))
	sb.WriteString(fmt.Sprintf("Key:   %s", desc.StorageKey))
	if desc.URL != "" {
		sb.WriteString(fmt.Sprintf("\nURL:   %s", desc.URL))
	}
	if desc.Content != "" {
		sb.WriteString("\n\n" + strings.TrimSpace(desc.Content))
	}

	p.printBox("UPLOADED DOCUMENT", sb.String())
}

// PrintProblems outputs the field problems behind a rejected submission.
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) PrintProblems(err error) {
	if err == nil {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ POSTING IS VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	problems := problemLines(err)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problems:\n\n", len(problems)))
	for i, line := range problems {
		sb.WriteString(fmt.Sprintf("⚠ %s", line))
		if i < len(problems)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SUBMISSION PROBLEMS", sb.String())
}

func problemLines(err error) []string {
	var (
		fieldErrs validator.ValidationErrors
		schemaErr *schemas.ValidationError
		projErr   *jobform.ProjectionError
	)
	switch {
	case errors.As(err, &fieldErrs):
		lines := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			lines = append(lines, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
		}
		return lines
	case errors.As(err, &schemaErr):
		lines := make([]string, 0, len(schemaErr.Errors))
		for _, fe := range schemaErr.Errors {
			lines = append(lines, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
		}
		return lines
	case errors.As(err, &projErr):
		return []string{fmt.Sprintf("%s: %q is not valid", projErr.Field.Name(), projErr.Value)}
	default:
		return []string{err.Error()}
	}
}
