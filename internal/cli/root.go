package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"saju-api/internal/almanac"
	"saju-api/internal/config"
	"saju-api/internal/domain"
	"saju-api/internal/service"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type almanacFlags struct {
	tablePath string
	from, to  int
}

func newRootCmd() *cobra.Command {
	_ = godotenv.Load()

	flags := almanacFlags{from: 1900, to: 2050}
	if cfg, err := config.LoadAlmanacConfig(); err == nil {
		flags = almanacFlags{tablePath: cfg.TablePath, from: cfg.TableFrom, to: cfg.TableTo}
	}

	cmd := &cobra.Command{
		Use:          "saju",
		Short:        "Four pillars calculator",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&flags.tablePath, "table", flags.tablePath, "term table YAML (computed when empty)")
	cmd.PersistentFlags().IntVar(&flags.from, "table-from", flags.from, "first year served by the term table")
	cmd.PersistentFlags().IntVar(&flags.to, "table-to", flags.to, "last year served by the term table")

	cmd.AddCommand(chartCmd(&flags), compatCmd(&flags), termTableCmd(), hashSecretCmd())
	return cmd
}

func (f *almanacFlags) chartService() (*service.ChartService, error) {
	alm, err := almanac.Open(f.tablePath, f.from, f.to)
	if err != nil {
		return nil, err
	}
	logger := zap.NewExample()
	return service.NewChartService(service.NewCalendarResolver(alm), nil, logger), nil
}

// parseMoment lee "YYYY-MM-DD" y "HH:MM" sin normalizar: la validacion es del resolver.
func parseMoment(date, clock string) (domain.BirthMoment, error) {
	var m domain.BirthMoment
	if _, err := fmt.Sscanf(strings.TrimSpace(date), "%d-%d-%d", &m.Year, &m.Month, &m.Day); err != nil {
		return domain.BirthMoment{}, fmt.Errorf("date %q: expected YYYY-MM-DD", date)
	}
	if _, err := fmt.Sscanf(strings.TrimSpace(clock), "%d:%d", &m.Hour, &m.Minute); err != nil {
		return domain.BirthMoment{}, fmt.Errorf("time %q: expected HH:MM", clock)
	}
	return m, nil
}

// parseMomentArg acepta "YYYY-MM-DD HH:MM" o "YYYY-MM-DDTHH:MM".
func parseMomentArg(s string) (domain.BirthMoment, error) {
	s = strings.Replace(strings.TrimSpace(s), "T", " ", 1)
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return domain.BirthMoment{}, fmt.Errorf("moment %q: expected \"YYYY-MM-DD HH:MM\"", s)
	}
	return parseMoment(parts[0], parts[1])
}
