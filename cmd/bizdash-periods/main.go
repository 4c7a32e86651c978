// Command bizdash-periods resolves reporting periods from the shell
//
//	bizdash-periods resolve --period MONTH_TO_DATE --now 2024-03-15T10:00:00+08:00
//	bizdash-periods list
//	bizdash-periods change 1200 1000
package main

import (
	"os"
	_ "time/tzdata"

	"bizdash/internal/platform/config"
	perr "bizdash/internal/platform/errors"
	"bizdash/internal/platform/logger"
)

func main() {
	l := logger.Get()
	cmd := newRootCmd(config.New())
	if err := cmd.Execute(); err != nil {
		l.Error().Err(err).Msg("bizdash-periods failed")
		// bad input exits 2 like a usage error
		if perr.IsCode(err, perr.ErrorCodeInvalidArgument) || perr.IsCode(err, perr.ErrorCodeValidation) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
