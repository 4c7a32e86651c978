package main

import (
	modkit "bizdash/internal/modkit"
	"bizdash/internal/platform/logger"
	ptime "bizdash/internal/platform/time"
	"bizdash/internal/services/api/periods/domain"
	periodssvc "bizdash/internal/services/api/periods/service"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type resolveCmd struct {
	app      *app
	period   string
	now      string
	start    string
	end      string
	fallback bool
}

// resolveOutput is the printed result; trace_id ties it to the log line
type resolveOutput struct {
	TraceID  string `json:"trace_id"`
	Timezone string `json:"timezone"`
	domain.ResolveResp
}

func newResolveCmd(a *app) *cobra.Command {
	rc := &resolveCmd{app: a}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the current and comparison windows of a period",
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}
	cmd.Flags().StringVar(&rc.period, "period", "", "period identifier (default $BIZ_DEFAULT_PERIOD or YESTERDAY)")
	cmd.Flags().StringVar(&rc.now, "now", "", "reference instant, RFC 3339 (default the wall clock)")
	cmd.Flags().StringVar(&rc.start, "start", "", "CUSTOM start, YYYY-MM-DD or ISO-8601")
	cmd.Flags().StringVar(&rc.end, "end", "", "CUSTOM end, YYYY-MM-DD or ISO-8601")
	cmd.Flags().BoolVar(&rc.fallback, "fallback", false, "resolve the default period with a notice instead of failing")
	return cmd
}

func (rc *resolveCmd) run(cmd *cobra.Command, _ []string) error {
	res, err := rc.app.resolver()
	if err != nil {
		return err
	}
	def := modkit.Deps{Cfg: rc.app.cfg}.DefaultPeriod()
	svc := periodssvc.New(res, ptime.System(res.Location()), def)

	trace := uuid.NewString()
	ctx := logger.WithRequest(cmd.Context(), trace)
	ctx = logger.WithPeriod(ctx, rc.period)

	id := rc.period
	if id == "" {
		id = string(def)
	}
	out, err := svc.Resolve(ctx, domain.ResolveInput{
		Period:      id,
		Now:         rc.now,
		CustomStart: rc.start,
		CustomEnd:   rc.end,
		Fallback:    rc.fallback,
	})
	if err != nil {
		logger.C(ctx).Debug().Err(err).Msg("resolve failed")
		return err
	}
	return writeJSON(cmd.OutOrStdout(), resolveOutput{
		TraceID:     trace,
		Timezone:    res.Location().String(),
		ResolveResp: out,
	})
}
