package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	relativePattern = regexp.MustCompile(`^@today([+-])(\d+)([dwm])$`)
	isoPattern      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	queryPattern    = regexp.MustCompile(`\b(\w+):([-<>=]*(?:@today(?:[+-]\d+[dwm])?|\d{4}-\d{2}-\d{2}))(?:\s|$)`)
)

// DateFields maps search query keys to Linear issue date fields
var DateFields = map[string]string{
	"created":   "createdAt",
	"updated":   "updatedAt",
	"completed": "completedAt",
	"due":       "dueDate",
}

// DateComparison is a parsed date expression such as ">=@today-1w"
type DateComparison struct {
	// Comparator is one of Linear's date comparators: eq, neq, gt, gte, lt, lte
	Comparator string
	Date       string
}

// Filter returns the comparison as a Linear DateComparator document
func (c DateComparison) Filter() map[string]interface{} {
	return map[string]interface{}{c.Comparator: c.Date}
}

// ParseDateExpression parses a date expression relative to today
//
//	@today       -> eq 2025-09-04
//	>@today-1w   -> gt 2025-08-28
//	<=2025-01-31 -> lte 2025-01-31
//	-@today      -> neq 2025-09-04
func ParseDateExpression(input string) (DateComparison, error) {
	return ParseDateExpressionWithBase(input, time.Now())
}

// ParseDateExpressionWithBase parses with a specific base date (for testing)
func ParseDateExpressionWithBase(input string, baseDate time.Time) (DateComparison, error) {
	input = strings.ReplaceAll(input, " ", "")

	exclude := false
	if strings.HasPrefix(input, "-") {
		exclude = true
		input = input[1:]
	}

	comparator := "eq"
	switch {
	case strings.HasPrefix(input, ">="):
		comparator, input = "gte", input[2:]
	case strings.HasPrefix(input, ">"):
		comparator, input = "gt", input[1:]
	case strings.HasPrefix(input, "<="):
		comparator, input = "lte", input[2:]
	case strings.HasPrefix(input, "<"):
		comparator, input = "lt", input[1:]
	}

	date, err := parseDate(input, baseDate)
	if err != nil {
		return DateComparison{}, err
	}

	if exclude {
		comparator = negate(comparator)
	}

	return DateComparison{Comparator: comparator, Date: date}, nil
}

func negate(comparator string) string {
	switch comparator {
	case "gt":
		return "lte"
	case "gte":
		return "lt"
	case "lt":
		return "gte"
	case "lte":
		return "gt"
	default:
		return "neq"
	}
}

// parseDate parses @today, @today±N{d,w,m} and YYYY-MM-DD
func parseDate(input string, baseDate time.Time) (string, error) {
	if input == "@today" {
		return baseDate.Format("2006-01-02"), nil
	}

	if matches := relativePattern.FindStringSubmatch(input); matches != nil {
		num, err := strconv.Atoi(matches[2])
		if err != nil {
			return "", fmt.Errorf("invalid number: %s", matches[2])
		}
		if matches[1] == "-" {
			num = -num
		}

		var target time.Time
		switch matches[3] {
		case "d":
			target = baseDate.AddDate(0, 0, num)
		case "w":
			target = baseDate.AddDate(0, 0, 7*num)
		case "m":
			target = baseDate.AddDate(0, num, 0)
		}
		return target.Format("2006-01-02"), nil
	}

	if isoPattern.MatchString(input) {
		if _, err := time.Parse("2006-01-02", input); err != nil {
			return "", fmt.Errorf("invalid date: %s", input)
		}
		return input, nil
	}

	return "", fmt.Errorf("unsupported date format: %s", input)
}

// ExtractDateFilters pulls date terms such as "updated:>@today-1w" out of a
// search query. It returns the remaining free text and a Linear filter
// fragment keyed by issue date field.
func ExtractDateFilters(query string, baseDate time.Time) (string, map[string]interface{}, error) {
	filters := map[string]interface{}{}
	var firstErr error

	rest := queryPattern.ReplaceAllStringFunc(query, func(match string) string {
		parts := queryPattern.FindStringSubmatch(match)
		field, ok := DateFields[strings.ToLower(parts[1])]
		if !ok {
			return match
		}

		cmp, err := ParseDateExpressionWithBase(parts[2], baseDate)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", parts[1], err)
			}
			return match
		}

		existing, _ := filters[field].(map[string]interface{})
		if existing == nil {
			existing = map[string]interface{}{}
		}
		existing[cmp.Comparator] = cmp.Date
		filters[field] = existing
		return " "
	})
	if firstErr != nil {
		return "", nil, firstErr
	}

	return strings.Join(strings.Fields(rest), " "), filters, nil
}
