package term

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// RunInput reads lines from in and commits each one. "quit" and "exit"
// end the loop, as does EOF or context cancellation. Submit failures are
// logged and the loop keeps going; the draft is re-offered by printing it
// back so the user can resend.
func RunInput(ctx context.Context, in io.Reader, out io.Writer, s Submitter, logger *zerolog.Logger) error {
	scanner := bufio.NewScanner(in)
	composer := &Composer{}

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Text()
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "quit", "exit", "q":
			return nil
		}

		composer.Set(line)
		if err := composer.Commit(ctx, s); err != nil {
			logger.Warn().Err(err).Msg("failed to send message")
			io.WriteString(out, "send failed, draft kept: "+composer.Draft()+"\n")
		}
	}
	return scanner.Err()
}
