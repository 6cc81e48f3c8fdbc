package handler

import (
	"bangerbot/internal/core/domain/command"
	"bangerbot/internal/core/port"
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

type Command struct {
	commandRegistry port.CommandRegistry
}

func NewCommand(commandRegistry port.CommandRegistry) *Command {
	return &Command{commandRegistry: commandRegistry}
}

func (c *Command) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	log.Debug().Str("message", update.Message.Text).Msg("received command")

	cmd := command.ParseCommand(update.Message.Text)
	commandHandler, err := c.commandRegistry.Get(cmd)
	if err != nil {
		log.Debug().Str("command", cmd).Err(err).Msg("no handler for command")
		return
	}

	err = commandHandler.Respond(ctx, toMessage(update.Message))
	if err != nil {
		log.Err(err).Str("command", cmd).Msg("failed to respond to command")
	}
}
