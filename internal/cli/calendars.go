package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"ghl/internal/services"
)

var calendarColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "NAME", Key: "name"},
	{Header: "ACTIVE", Key: "isActive"},
}

var eventColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "TITLE", Key: "title"},
	{Header: "START", Key: "startTime"},
	{Header: "END", Key: "endTime"},
	{Header: "STATUS", Key: "appointmentStatus"},
}

// newCalendarsCmd creates the calendars command group.
func (cli *CLI) newCalendarsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "calendars",
		Aliases: []string{"calendar"},
		Short:   "Inspect calendars and upcoming events",
	}

	var (
		from string
		to   string
	)

	eventsCmd := &cobra.Command{
		Use:   "events <calendar-id>",
		Short: "List events for a calendar",
		Long: `List events for a calendar within a time window.

Dates are parsed as YYYY-MM-DD in local time. The window defaults to the
next 30 days.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cli.newOutput()
			if err != nil {
				return err
			}
			client, err := cli.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			start, end, err := eventWindow(from, to)
			if err != nil {
				return err
			}

			events, err := services.ListCalendarEvents(cmd.Context(), client, args[0], start, end)
			if err != nil {
				return err
			}
			return output.WriteList(eventColumns, events)
		},
	}
	eventsCmd.Flags().StringVar(&from, "from", "", "Window start, YYYY-MM-DD (default today)")
	eventsCmd.Flags().StringVar(&to, "to", "", "Window end, YYYY-MM-DD (default 30 days out)")

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List calendars",
			RunE: func(cmd *cobra.Command, args []string) error {
				output, err := cli.newOutput()
				if err != nil {
					return err
				}
				client, err := cli.newClient()
				if err != nil {
					return err
				}
				defer client.Close()

				calendars, err := services.ListCalendars(cmd.Context(), client)
				if err != nil {
					return err
				}
				return output.WriteList(calendarColumns, calendars)
			},
		},
		&cobra.Command{
			Use:   "get <calendar-id>",
			Short: "Show a single calendar",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				output, err := cli.newOutput()
				if err != nil {
					return err
				}
				client, err := cli.newClient()
				if err != nil {
					return err
				}
				defer client.Close()

				calendar, err := services.GetCalendar(cmd.Context(), client, args[0])
				if err != nil {
					return err
				}
				return output.WriteObject(calendar)
			},
		},
		eventsCmd,
	)

	return cmd
}

// eventWindow converts the from/to date flags into epoch-millisecond strings.
func eventWindow(from, to string) (string, string, error) {
	start := time.Now()
	if from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			return "", "", fmt.Errorf("invalid --from date %q: %w", from, err)
		}
		start = t
	}

	end := start.AddDate(0, 0, 30)
	if to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			return "", "", fmt.Errorf("invalid --to date %q: %w", to, err)
		}
		end = t.AddDate(0, 0, 1)
	}

	return strconv.FormatInt(start.UnixMilli(), 10), strconv.FormatInt(end.UnixMilli(), 10), nil
}
