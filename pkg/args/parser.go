package args

import (
	"github.com/spf13/cobra"

	"github.com/yahsan2/linear-pm/pkg/filter"
)

// CommonFlags contains flag names used across commands
type CommonFlags struct {
	Team     string
	Label    string
	Assignee string
	Author   string
	State    string
	Project  string
	Search   string
	Limit    string
}

// DefaultFlags returns the default flag names
func DefaultFlags() *CommonFlags {
	return &CommonFlags{
		Team:     "team",
		Label:    "label",
		Assignee: "assignee",
		Author:   "author",
		State:    "state",
		Project:  "project",
		Search:   "search",
		Limit:    "limit",
	}
}

// AddCommonFlags adds gh issue list style filter flags to the command
func AddCommonFlags(cmd *cobra.Command, flags *CommonFlags) {
	if flags == nil {
		flags = DefaultFlags()
	}

	cmd.Flags().StringP(flags.Team, "t", "", "Filter by team key")
	cmd.Flags().StringSliceP(flags.Label, "l", []string{}, "Filter by label")
	cmd.Flags().StringP(flags.Assignee, "a", "", "Filter by assignee (@me, email, name or none)")
	cmd.Flags().StringP(flags.Author, "A", "", "Filter by creator")
	cmd.Flags().StringP(flags.State, "s", filter.StateOpen, "Filter by state: {open|closed|all|<state name>}")
	cmd.Flags().StringP(flags.Project, "p", "", "Filter by project name or ID")
	cmd.Flags().StringP(flags.Search, "S", "", "Search title and description; accepts updated:>@today-1w style terms")
	cmd.Flags().IntP(flags.Limit, "L", 100, "Maximum number of issues to fetch")
}

// ParseCommonFlags extracts common filters from command flags
func ParseCommonFlags(cmd *cobra.Command, flags *CommonFlags) (*filter.IssueFilters, error) {
	if flags == nil {
		flags = DefaultFlags()
	}

	filters := filter.NewIssueFilters()

	var err error

	if filters.Team, err = cmd.Flags().GetString(flags.Team); err != nil {
		return nil, err
	}

	if filters.Labels, err = cmd.Flags().GetStringSlice(flags.Label); err != nil {
		return nil, err
	}

	if filters.Assignee, err = cmd.Flags().GetString(flags.Assignee); err != nil {
		return nil, err
	}

	if filters.Author, err = cmd.Flags().GetString(flags.Author); err != nil {
		return nil, err
	}

	if filters.State, err = cmd.Flags().GetString(flags.State); err != nil {
		return nil, err
	}

	if filters.Project, err = cmd.Flags().GetString(flags.Project); err != nil {
		return nil, err
	}

	if filters.Search, err = cmd.Flags().GetString(flags.Search); err != nil {
		return nil, err
	}

	if filters.Limit, err = cmd.Flags().GetInt(flags.Limit); err != nil {
		return nil, err
	}

	return filters, nil
}

// AddDateFlags adds priority and date window flags to the command
func AddDateFlags(cmd *cobra.Command) {
	cmd.Flags().String("priority", "", "Filter by priority name or number")
	cmd.Flags().String("updated", "", "Filter by update date, e.g. >=@today-1w")
	cmd.Flags().String("created", "", "Filter by creation date, e.g. <2025-01-01")
}

// ParseDateFlags extracts priority and date filters from command flags
func ParseDateFlags(cmd *cobra.Command, filters *filter.IssueFilters) error {
	var err error

	if filters.Priority, err = cmd.Flags().GetString("priority"); err != nil {
		return err
	}

	if filters.Updated, err = cmd.Flags().GetString("updated"); err != nil {
		return err
	}

	if filters.Created, err = cmd.Flags().GetString("created"); err != nil {
		return err
	}

	return nil
}
