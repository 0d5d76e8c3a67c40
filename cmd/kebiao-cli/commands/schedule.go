package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"kebiao-backend/lib/restyutil"
	"kebiao-backend/lib/telemetry"
	"kebiao-backend/services/kebiao"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var renderTable bool

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Log into the portal and print the current term's schedule.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		tel, err := telemetry.SetupFromEnv(ctx, "kebiao-cli")
		if err != nil {
			return err
		}
		defer tel.Shutdown(ctx)
		telemetry.InstrumentPerfStats(ctx)

		config := loadConfig()

		stdin := bufio.NewReader(os.Stdin)
		accountId, err := promptLine(stdin, "sid: ")
		if err != nil {
			return err
		}
		password, err := promptLine(stdin, "password: ")
		if err != nil {
			return err
		}

		var output restyutil.InstrumentOutput
		if verbose {
			output = restyutil.NewFilesystemOutput(".dev/resty_capture")
		}
		service := kebiao.NewService(kebiao.ServiceOptions{
			BaseUrl:          config.BaseUrl,
			InstrumentOutput: output,
		})

		result := service.GetSchedule(ctx, kebiao.Credentials{
			AccountId: accountId,
			Password:  password,
		})

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(result); err != nil {
			return err
		}

		if renderTable && result.Data != nil {
			fmt.Println(formatScheduleTable(result.Data))
		}
		return nil
	},
}

func init() {
	scheduleCmd.Flags().BoolVar(
		&renderTable, "table", false,
		"additionally render the schedule as a table",
	)
	rootCmd.AddCommand(scheduleCmd)
}

func promptLine(stdin *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatScheduleTable(record *kebiao.ScheduleRecord) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"course", "teacher", "weekday", "sessions", "weeks", "place"})
	for _, c := range record.Courses {
		weekday := ""
		if c.Weekday != nil {
			weekday = fmt.Sprint(c.Weekday)
		}
		w.AppendRow(table.Row{
			orEmpty(c.Title),
			orEmpty(c.Teacher),
			weekday,
			joinInts(c.Sessions),
			joinInts(c.Weeks),
			orEmpty(c.Place),
		})
	}
	return w.Render()
}
