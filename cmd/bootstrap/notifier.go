package bootstrap

import (
	"log/slog"

	"stayhub/internal/infra/notify"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase/commands"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		fx.Annotate(
			NewConfirmationNotifier,
			fx.As(new(commands.ConfirmationNotifier)),
		),
	),
)

func NewConfirmationNotifier(cfg config.Config) *notify.RabbitMQNotifier {
	notifier := notify.NewRabbitMQNotifier(cfg.AMQP.URL, cfg.AMQP.Queue)
	if !notifier.Enabled() {
		slog.Info("AMQP_URL not set, confirmation publishing disabled")
	}
	return notifier
}
