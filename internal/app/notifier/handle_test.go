package notifier

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/studio-portfolio/internal/lib/rabbitmq"
	senderservice "github.com/magabrotheeeer/studio-portfolio/internal/services/sender"
)

func TestPermanentIfMalformed(t *testing.T) {
	malformed := fmt.Errorf("sender.SendContactNotification: %w", senderservice.ErrMalformedMessage)
	transient := errors.New("smtp: connection refused")

	assert.NoError(t, permanentIfMalformed(nil))

	err := permanentIfMalformed(malformed)
	assert.ErrorIs(t, err, rabbitmq.ErrPermanent)
	assert.ErrorIs(t, err, senderservice.ErrMalformedMessage)

	err = permanentIfMalformed(transient)
	assert.Equal(t, transient, err)
	assert.NotErrorIs(t, err, rabbitmq.ErrPermanent)
}
