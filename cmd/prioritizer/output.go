package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"feature-prioritizer/internal/entity"
	"feature-prioritizer/internal/service"
	"feature-prioritizer/pkg/prioritization"

	"github.com/fatih/color"
)

var (
	highColor   = color.New(color.FgGreen, color.Bold)
	mediumColor = color.New(color.FgYellow)
	lowColor    = color.New(color.FgRed)
)

func colorize(level entity.PriorityLevel) string {
	switch level {
	case entity.PriorityHigh:
		return highColor.Sprint(level)
	case entity.PriorityMedium:
		return mediumColor.Sprint(level)
	default:
		return lowColor.Sprint(level)
	}
}

func printView(w io.Writer, view service.View) error {
	if len(view.Rows) == 0 {
		_, err := fmt.Fprintf(w, "No features (%d total)\n", view.Total)
		return err
	}

	// PRIORITY is the last column; tabwriter counts colour escapes as width.
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if view.Framework == entity.FrameworkMoscow {
		fmt.Fprintln(tw, "RANK\tNAME\tCATEGORY\tID\tPRIORITY")
	} else {
		fmt.Fprintln(tw, "RANK\tNAME\tREACH\tIMPACT\tCONF\tEFFORT\tSCORE\tID\tPRIORITY")
	}
	for _, row := range view.Rows {
		h := row.Feature.Header()
		switch f := row.Feature.(type) {
		case entity.RiceFeature:
			if view.Framework == entity.FrameworkMoscow {
				fmt.Fprintf(tw, "%d\t%s\t\t%s\t%s\n", row.Rank, h.Name, h.Id, colorize(row.Priority))
				continue
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", row.Rank, h.Name,
				number(float64(f.Reach)), number(f.Impact), number(float64(f.Confidence)), number(float64(f.Effort)),
				strconv.FormatFloat(f.Score, 'f', -1, 64), h.Id, colorize(row.Priority))
		case entity.MoscowFeature:
			if view.Framework == entity.FrameworkMoscow {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", row.Rank, h.Name, f.Category.Label(), h.Id, colorize(row.Priority))
				continue
			}
			fmt.Fprintf(tw, "%d\t%s\t\t\t\t\t0\t%s\t%s\n", row.Rank, h.Name, h.Id, colorize(row.Priority))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d features\n", view.Filtered, view.Total)
	return err
}

// number renders an absent metric as "-".
func number(v float64) string {
	if v == 0 {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// describe lists validation messages one per line.
func describe(err error) error {
	var verr *prioritization.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("invalid feature:\n  %s", strings.Join(verr.Messages, "\n  "))
	}
	return err
}
