package main

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"io"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"github.com/letscook/cook-client/pkg/launchpad/mint"
	"github.com/letscook/cook-client/pkg/launchpad/network"
	"github.com/letscook/cook-client/pkg/launchpad/state"
	"github.com/letscook/cook-client/pkg/solana"
)

type launchSummary struct {
	Page          string
	Present       bool
	TicketsSold   uint32
	NumMints      uint32
	Listing       *string
	TokenMint     *string
	TokenSymbol   string
	WhitelistMint *string
	Tickets       *uint16
}

func summarizeLaunch(page string, s state.LaunchState) launchSummary {
	res := launchSummary{Page: page}
	if s.Launch != nil {
		res.Present = true
		res.TicketsSold = s.Launch.TicketsSold
		res.NumMints = s.Launch.NumMints
		res.Listing = keyString(s.Launch.Listing)
	}
	if s.TokenMint != nil {
		res.TokenMint = keyString(s.TokenMint.Address)
		res.TokenSymbol = s.TokenMint.Symbol
	}
	if s.WhitelistMint != nil {
		res.WhitelistMint = keyString(s.WhitelistMint.Address)
	}
	if s.Join != nil {
		tickets := s.Join.NumTickets
		res.Tickets = &tickets
	}
	return res
}

func keyString(key ed25519.PublicKey) *string {
	if len(key) == 0 {
		return nil
	}
	s := solana.PublicKeyString(key)
	return &s
}

func printUpdate(out io.Writer, log *logrus.Entry, v interface{}) {
	rendered, err := renderJSON(v)
	if err != nil {
		log.WithError(err).Warn("failed to render update")
		return
	}
	fmt.Fprintln(out, string(rendered))
}

func watchLaunch(ctx context.Context, out io.Writer, reader network.Reader, settings *network.Settings, page string, user ed25519.PublicKey) error {
	log := logrus.StandardLogger().WithFields(logrus.Fields{
		"type": "cookctl/watch-launch",
		"page": page,
	})

	mints := mint.NewResolver(reader, settings, mint.WithEnvConfigs())
	view, err := state.NewLaunchView(reader, mints, page, user, func(s state.LaunchState) {
		printUpdate(out, log, summarizeLaunch(page, s))
	}, state.WithEnvConfigs())
	if err != nil {
		return err
	}
	defer view.Close()

	log.WithField("launch", solana.PublicKeyString(view.LaunchAddress())).Info("watching launch")
	if err := view.Start(ctx); err != nil {
		return err
	}
	printUpdate(out, log, summarizeLaunch(page, view.State()))

	<-ctx.Done()
	return ctx.Err()
}

func watchMarketplace(ctx context.Context, out io.Writer, reader network.Reader, collection ed25519.PublicKey) error {
	log := logrus.StandardLogger().WithFields(logrus.Fields{
		"type":       "cookctl/watch-marketplace",
		"collection": solana.PublicKeyString(collection),
	})

	view, err := state.NewMarketplaceView(reader, collection, clock.New(), func(s state.MarketplaceState) {
		printUpdate(out, log, s)
	}, state.WithEnvConfigs())
	if err != nil {
		return err
	}
	defer view.Close()

	log.WithField("summary", solana.PublicKeyString(view.SummaryAddress())).Info("watching marketplace")
	if err := view.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	return ctx.Err()
}
