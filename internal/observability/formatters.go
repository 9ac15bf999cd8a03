// Package observability provides logging, metrics and formatted terminal
// output for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/jonathan/course-compass/internal/graph"
	"github.com/jonathan/course-compass/internal/timeline"
	"github.com/jonathan/course-compass/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

var (
	titleColor  = color.New(color.FgHiGreen, color.Bold)
	accentColor = color.New(color.FgCyan)
	subtleColor = color.New(color.FgHiBlack)
	warnColor   = color.New(color.FgYellow)
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s%s │\n", titleColor.Sprint(title), strings.Repeat(" ", max(boxWidth-4-len(title), 0)))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintTimelinePlan outputs the analysis and every path of plan, marking
// the selected one.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintTimelinePlan(plan *types.TimelinePlan, selected types.PathKey) {
	if plan == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Field:   %s\n", plan.Analysis.CareerField))
	sb.WriteString(fmt.Sprintf("Level:   %s\n", plan.Analysis.CurrentLevel))
	if len(plan.Analysis.KeySkillsNeeded) > 0 {
		sb.WriteString(fmt.Sprintf("Skills:  %s\n", strings.Join(plan.Analysis.KeySkillsNeeded, ", ")))
	}
	p.printBox("CAREER ANALYSIS", sb.String())

	for _, key := range types.PathKeys {
		path, _ := plan.Path(key)
		marker := " "
		if key == selected {
			marker = "*"
		}
		fmt.Fprintf(p.out, "\n%s %s %s\n", marker, titleColor.Sprint(strings.ToUpper(string(key))), path.Title)
		if path.TargetCareer != "" {
			fmt.Fprintf(p.out, "  %s\n", subtleColor.Sprintf("target: %s", path.TargetCareer))
		}
		for _, sem := range path.Semesters {
			fmt.Fprintf(p.out, "  %s\n", accentColor.Sprint(sem.Name))
			if len(sem.Courses) == 0 {
				fmt.Fprintf(p.out, "    %s\n", subtleColor.Sprint("(no courses)"))
			}
			for _, c := range sem.Courses {
				fmt.Fprintf(p.out, "    • %-10s %s\n", c.Code, c.Title)
			}
		}
	}
}

// PrintLayoutStats summarises a laid out path.
func (p *Printer) PrintLayoutStats(g timeline.RenderGraph) {
	courses := len(g.CourseNodes())
	content := fmt.Sprintf("Semesters: %d\nCourses:   %d\nEdges:     %d\n",
		len(g.Nodes)-courses, courses, len(g.Edges))
	p.printBox("TIMELINE LAYOUT", content)
}

// PrintGraphSummary outputs course and edge counts, per-subject totals and
// the most central courses.
func (p *Printer) PrintGraphSummary(g *graph.Graph) {
	if g == nil {
		return
	}
	courses := g.Courses()

	bySubject := map[types.Subject]int{}
	reviewed := 0
	for _, c := range courses {
		bySubject[c.Subject]++
		if c.HasReviews() {
			reviewed++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Courses:  %d\n", g.Len()))
	sb.WriteString(fmt.Sprintf("Edges:    %d\n", g.EdgeCount()))
	sb.WriteString(fmt.Sprintf("Reviewed: %d\n", reviewed))
	subjects := make([]string, 0, len(bySubject))
	for s := range bySubject {
		subjects = append(subjects, string(s))
	}
	sort.Strings(subjects)
	for _, s := range subjects {
		sb.WriteString(fmt.Sprintf("  %-6s %d\n", s, bySubject[types.Subject(s)]))
	}

	ranked := append([]types.Course(nil), courses...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Centrality > ranked[j].Centrality })
	if len(ranked) > 0 {
		sb.WriteString("\nMost central:\n")
		for _, c := range ranked[:min(len(ranked), maxItemsToShow)] {
			sb.WriteString(fmt.Sprintf("  • %-10s %.4f\n", c.ID, c.Centrality))
		}
	}
	p.printBox("COURSE GRAPH", sb.String())
}

// PrintStudyMaterials outputs the materials for each course.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStudyMaterials(all []types.CourseStudyMaterials) {
	if len(all) == 0 {
		fmt.Fprintln(p.out, warnColor.Sprint("No study materials available."))
		return
	}
	for _, cm := range all {
		fmt.Fprintf(p.out, "\n%s %s\n", titleColor.Sprint(cm.CourseCode), cm.CourseTitle)
		for _, m := range cm.Materials {
			fmt.Fprintf(p.out, "  [%s/%s] %s\n", accentColor.Sprint(m.Type), m.Difficulty, m.Title)
			fmt.Fprintf(p.out, "    %s\n", subtleColor.Sprint(m.URL))
		}
	}
}

// PrintCourseCodes outputs extracted course codes, one per line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCourseCodes(codes []string) {
	if len(codes) == 0 {
		fmt.Fprintln(p.out, warnColor.Sprint("No course codes found."))
		return
	}
	for _, c := range codes {
		fmt.Fprintln(p.out, c)
	}
}
