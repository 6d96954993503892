package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cli/go-gh/v2/pkg/jq"
	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/cli/go-gh/v2/pkg/term"

	"github.com/yahsan2/linear-pm/pkg/graphql"
	"github.com/yahsan2/linear-pm/pkg/issue"
	"github.com/yahsan2/linear-pm/pkg/project"
	"github.com/yahsan2/linear-pm/pkg/team"
	"github.com/yahsan2/linear-pm/pkg/user"
)

// FormatType represents the output format type
type FormatType int

const (
	// FormatTable outputs as a formatted table
	FormatTable FormatType = iota
	// FormatJSON outputs as JSON
	FormatJSON
	// FormatCSV outputs as CSV
	FormatCSV
	// FormatQuiet outputs minimal information
	FormatQuiet
)

// ParseFormat converts a --output value into a FormatType
func ParseFormat(s string) (FormatType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "quiet":
		return FormatQuiet, nil
	default:
		return FormatTable, fmt.Errorf("unsupported output format: %s (use table, json, csv or quiet)", s)
	}
}

// Formatter handles output formatting
type Formatter struct {
	format FormatType
	writer io.Writer
	isTTY  bool
	width  int
	jq     string
}

// NewFormatter creates a new formatter writing to stdout
func NewFormatter(format FormatType) *Formatter {
	t := term.FromEnv()
	width, _, err := t.Size()
	if err != nil || width <= 0 {
		width = 80
	}
	return &Formatter{
		format: format,
		writer: os.Stdout,
		isTTY:  t.IsTerminalOutput(),
		width:  width,
	}
}

// NewFormatterWithWriter creates a new formatter with custom writer
func NewFormatterWithWriter(format FormatType, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
		width:  80,
	}
}

// WithJQ filters JSON output through a jq expression
func (f *Formatter) WithJQ(expr string) *Formatter {
	f.jq = expr
	return f
}

// Format returns the configured format type
func (f *Formatter) Format() FormatType {
	return f.format
}

// FormatIssue formats a single issue for output
func (f *Formatter) FormatIssue(iss *issue.Issue) error {
	switch f.format {
	case FormatQuiet:
		_, err := fmt.Fprintln(f.writer, iss.URL)
		return err
	case FormatJSON:
		return f.writeJSON(iss)
	case FormatCSV:
		return f.formatIssuesCSV([]issue.Issue{*iss})
	default:
		return f.formatIssueDetail(iss)
	}
}

func (f *Formatter) formatIssueDetail(iss *issue.Issue) error {
	w := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Identifier:\t%s\n", iss.Identifier)
	fmt.Fprintf(w, "Title:\t%s\n", iss.Title)
	fmt.Fprintf(w, "URL:\t%s\n", iss.URL)
	if iss.Team != nil {
		fmt.Fprintf(w, "Team:\t%s\n", iss.Team.Key)
	}
	if state := iss.StateName(); state != "" {
		fmt.Fprintf(w, "State:\t%s\n", state)
	}
	fmt.Fprintf(w, "Priority:\t%s\n", PriorityName(iss.Priority))
	if assignee := iss.AssigneeName(); assignee != "" {
		fmt.Fprintf(w, "Assignee:\t%s\n", assignee)
	}
	if labels := iss.LabelNames(); len(labels) > 0 {
		fmt.Fprintf(w, "Labels:\t%s\n", strings.Join(labels, ", "))
	}
	if iss.Project != nil {
		fmt.Fprintf(w, "Project:\t%s\n", iss.Project.Name)
	}

	return w.Flush()
}

// FormatIssues formats a list of issues
func (f *Formatter) FormatIssues(issues []issue.Issue) error {
	switch f.format {
	case FormatQuiet:
		for _, iss := range issues {
			if _, err := fmt.Fprintln(f.writer, iss.Identifier); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		if issues == nil {
			issues = []issue.Issue{}
		}
		return f.writeJSON(issues)
	case FormatCSV:
		return f.formatIssuesCSV(issues)
	default:
		return f.formatIssuesTable(issues)
	}
}

func (f *Formatter) formatIssuesTable(issues []issue.Issue) error {
	if len(issues) == 0 {
		_, err := fmt.Fprintln(f.writer, "No issues found")
		return err
	}

	tp := tableprinter.New(f.writer, f.isTTY, f.width)
	tp.AddHeader([]string{"ID", "TITLE", "STATE", "PRIORITY", "ASSIGNEE", "LABELS"})
	for _, iss := range issues {
		tp.AddField(iss.Identifier)
		tp.AddField(iss.Title)
		tp.AddField(orDash(iss.StateName()))
		tp.AddField(PriorityName(iss.Priority))
		tp.AddField(orDash(iss.AssigneeName()))
		tp.AddField(orDash(strings.Join(iss.LabelNames(), ", ")))
		tp.EndRow()
	}
	return tp.Render()
}

func (f *Formatter) formatIssuesCSV(issues []issue.Issue) error {
	w := csv.NewWriter(f.writer)

	if err := w.Write([]string{"ID", "Identifier", "Title", "URL", "State", "Priority", "Assignee", "Labels"}); err != nil {
		return err
	}
	for _, iss := range issues {
		record := []string{
			iss.ID,
			iss.Identifier,
			iss.Title,
			iss.URL,
			iss.StateName(),
			fmt.Sprintf("%d", iss.Priority),
			iss.AssigneeName(),
			strings.Join(iss.LabelNames(), ";"),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// FormatBatchResult formats batch processing results
func (f *Formatter) FormatBatchResult(result *issue.BatchResult) error {
	switch f.format {
	case FormatQuiet:
		for _, iss := range result.Issues {
			if _, err := fmt.Fprintln(f.writer, iss.URL); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		return f.writeJSON(result)
	case FormatCSV:
		return f.formatBatchResultCSV(result)
	default:
		return f.formatBatchResultTable(result)
	}
}

func (f *Formatter) formatBatchResultTable(result *issue.BatchResult) error {
	w := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Total:\t%d\n", result.Total)
	fmt.Fprintf(w, "Succeeded:\t%d\n", result.Succeeded)
	fmt.Fprintf(w, "Failed:\t%d\n", result.Failed)

	if len(result.Issues) > 0 {
		fmt.Fprintf(w, "\nIssues:\n")
		for _, iss := range result.Issues {
			fmt.Fprintf(w, "%s\t%s\t%s\n", iss.Identifier, iss.Title, iss.URL)
		}
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors:\n")
		for _, e := range result.Errors {
			ref := e.ID
			if ref == "" {
				ref = e.Title
			}
			fmt.Fprintf(w, "  [%d] %s: %s\n", e.Index, ref, e.Error)
		}
	}

	return w.Flush()
}

func (f *Formatter) formatBatchResultCSV(result *issue.BatchResult) error {
	w := csv.NewWriter(f.writer)

	rows := [][]string{
		{"Type", "Count"},
		{"Total", fmt.Sprintf("%d", result.Total)},
		{"Succeeded", fmt.Sprintf("%d", result.Succeeded)},
		{"Failed", fmt.Sprintf("%d", result.Failed)},
	}
	if len(result.Issues) > 0 {
		rows = append(rows, []string{"Identifier", "Title", "URL"})
		for _, iss := range result.Issues {
			rows = append(rows, []string{iss.Identifier, iss.Title, iss.URL})
		}
	}

	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

// FormatProject formats a single project
func (f *Formatter) FormatProject(p *project.Project) error {
	switch f.format {
	case FormatQuiet:
		_, err := fmt.Fprintln(f.writer, p.URL)
		return err
	case FormatJSON:
		return f.writeJSON(p)
	case FormatCSV:
		return f.formatProjectsCSV([]project.Project{*p})
	}

	w := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", p.Name)
	fmt.Fprintf(w, "ID:\t%s\n", p.ID)
	fmt.Fprintf(w, "URL:\t%s\n", p.URL)
	if p.State != "" {
		fmt.Fprintf(w, "State:\t%s\n", p.State)
	}
	if keys := p.TeamKeys(); len(keys) > 0 {
		fmt.Fprintf(w, "Teams:\t%s\n", strings.Join(keys, ", "))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(p.Issues.Nodes) > 0 {
		fmt.Fprintln(f.writer)
		return f.formatIssuesTable(p.Issues.Nodes)
	}
	return nil
}

// FormatProjects formats a list of projects
func (f *Formatter) FormatProjects(projects []project.Project) error {
	switch f.format {
	case FormatQuiet:
		for _, p := range projects {
			if _, err := fmt.Fprintln(f.writer, p.ID); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		if projects == nil {
			projects = []project.Project{}
		}
		return f.writeJSON(projects)
	case FormatCSV:
		return f.formatProjectsCSV(projects)
	}

	if len(projects) == 0 {
		_, err := fmt.Fprintln(f.writer, "No projects found")
		return err
	}

	tp := tableprinter.New(f.writer, f.isTTY, f.width)
	tp.AddHeader([]string{"ID", "NAME", "STATE", "TEAMS"})
	for _, p := range projects {
		tp.AddField(p.ID)
		tp.AddField(p.Name)
		tp.AddField(orDash(p.State))
		tp.AddField(orDash(strings.Join(p.TeamKeys(), ", ")))
		tp.EndRow()
	}
	return tp.Render()
}

func (f *Formatter) formatProjectsCSV(projects []project.Project) error {
	w := csv.NewWriter(f.writer)
	if err := w.Write([]string{"ID", "Name", "State", "URL", "Teams"}); err != nil {
		return err
	}
	for _, p := range projects {
		if err := w.Write([]string{p.ID, p.Name, p.State, p.URL, strings.Join(p.TeamKeys(), ";")}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// FormatProjectWithIssues formats the result of a project plus issues creation
func (f *Formatter) FormatProjectWithIssues(result *project.ProjectWithIssuesResult, inputs []issue.CreateIssueInput) error {
	if f.format == FormatJSON {
		return f.writeJSON(result)
	}

	if p := result.ProjectCreate.Project; p != nil && f.format != FormatCSV {
		if f.format == FormatQuiet {
			if _, err := fmt.Fprintln(f.writer, p.URL); err != nil {
				return err
			}
		} else if _, err := fmt.Fprintf(f.writer, "Project %s created: %s\n\n", p.Name, p.URL); err != nil {
			return err
		}
	}

	summary := issue.SummarizeBatch(inputs, &issue.IssueBatchResponse{IssueBatchCreate: result.IssueBatchCreate})
	return f.FormatBatchResult(&summary)
}

// FormatTeams formats the teams list
func (f *Formatter) FormatTeams(teams []team.Team) error {
	switch f.format {
	case FormatQuiet:
		for _, t := range teams {
			if _, err := fmt.Fprintln(f.writer, t.Key); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		if teams == nil {
			teams = []team.Team{}
		}
		return f.writeJSON(teams)
	case FormatCSV:
		w := csv.NewWriter(f.writer)
		if err := w.Write([]string{"ID", "Key", "Name", "States"}); err != nil {
			return err
		}
		for _, t := range teams {
			if err := w.Write([]string{t.ID, t.Key, t.Name, strings.Join(t.StateNames(), ";")}); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	}

	tp := tableprinter.New(f.writer, f.isTTY, f.width)
	tp.AddHeader([]string{"KEY", "NAME", "ID", "STATES"})
	for _, t := range teams {
		tp.AddField(t.Key)
		tp.AddField(t.Name)
		tp.AddField(t.ID)
		tp.AddField(orDash(strings.Join(t.StateNames(), ", ")))
		tp.EndRow()
	}
	return tp.Render()
}

// FormatViewer formats the authenticated user
func (f *Formatter) FormatViewer(v *user.Viewer) error {
	switch f.format {
	case FormatJSON:
		return f.writeJSON(v)
	case FormatQuiet:
		_, err := fmt.Fprintln(f.writer, v.Email)
		return err
	}

	w := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", v.Name)
	fmt.Fprintf(w, "Email:\t%s\n", v.Email)
	fmt.Fprintf(w, "ID:\t%s\n", v.ID)
	if len(v.Teams.Nodes) > 0 {
		keys := make([]string, 0, len(v.Teams.Nodes))
		for _, t := range v.Teams.Nodes {
			keys = append(keys, t.Key)
		}
		fmt.Fprintf(w, "Teams:\t%s\n", strings.Join(keys, ", "))
	}
	return w.Flush()
}

// FormatError formats an error for output
func (f *Formatter) FormatError(err error) error {
	var opErr *graphql.OperationError
	isOpErr := errors.As(err, &opErr)

	if f.format == FormatJSON {
		errorData := map[string]string{
			"error": err.Error(),
		}
		if isOpErr {
			errorData["type"] = opErr.Type.String()
			if opErr.Operation != "" {
				errorData["operation"] = opErr.Operation
			}
			if opErr.Suggestion != "" {
				errorData["suggestion"] = opErr.Suggestion
			}
		}

		encoder := json.NewEncoder(f.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(errorData)
	}

	if _, printErr := fmt.Fprintf(f.writer, "Error: %s\n", err.Error()); printErr != nil {
		return printErr
	}
	if isOpErr && opErr.Suggestion != "" {
		_, printErr := fmt.Fprintf(f.writer, "Suggestion: %s\n", opErr.Suggestion)
		return printErr
	}
	return nil
}

func (f *Formatter) writeJSON(v interface{}) error {
	if f.jq == "" {
		encoder := json.NewEncoder(f.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return jq.Evaluate(bytes.NewReader(data), f.writer, f.jq)
}

// PriorityName returns Linear's label for a priority value
func PriorityName(p int) string {
	switch p {
	case 1:
		return "Urgent"
	case 2:
		return "High"
	case 3:
		return "Medium"
	case 4:
		return "Low"
	default:
		return "No priority"
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
