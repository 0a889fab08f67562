package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/moodjournal/internal/client/apiclient"
	"github.com/dmitrijs2005/moodjournal/internal/client/session"
)

// describeError turns err into a message for the user. The backend's own
// explanation is preferred; fallback names the failed action otherwise.
func describeError(fallback string, err error) string {
	if errors.Is(err, session.ErrAuthInProgress) {
		return "Another sign-in is already in progress."
	}
	if detail := apiclient.Detail(err); detail != "" {
		return detail
	}
	if errors.Is(err, apiclient.ErrUnavailable) {
		return fmt.Sprintf("%s: server unavailable", fallback)
	}
	return fallback
}

func report(fallback string, err error) error {
	printlnFn(describeError(fallback, err))
	return err
}
