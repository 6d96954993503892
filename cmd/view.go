package cmd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yahsan2/linear-pm/pkg/issue"
)

var viewCmd = &cobra.Command{
	Use:   "view <issue>",
	Short: "Display an issue",
	Long:  `Display a single issue by identifier (ENG-123) or ID.`,
	Example: `  linear-pm view ENG-123
  linear-pm view ENG-123 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

var identifierPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*)-(\d+)$`)

// issueRefFilter matches an issue by identifier or by ID
func issueRefFilter(ref string) map[string]interface{} {
	if m := identifierPattern.FindStringSubmatch(ref); m != nil {
		number, _ := strconv.Atoi(m[2])
		return map[string]interface{}{
			"team":   map[string]interface{}{"key": map[string]interface{}{"eq": strings.ToUpper(m[1])}},
			"number": map[string]interface{}{"eq": number},
		}
	}
	return map[string]interface{}{"id": map[string]interface{}{"eq": ref}}
}

func runView(cmd *cobra.Command, args []string) error {
	c, err := newClients(cmd)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(cmd, false)
	if err != nil {
		return err
	}

	resp, err := c.issues.SearchIssues(cmd.Context(), issue.SearchOptions{Filter: issueRefFilter(args[0]), First: 1})
	if err != nil {
		return fmt.Errorf("failed to fetch issue: %w", err)
	}
	if len(resp.Issues.Nodes) == 0 {
		return fmt.Errorf("issue %s not found", args[0])
	}

	return formatter.FormatIssue(&resp.Issues.Nodes[0])
}
