package system

import (
	"github.com/julianstephens/pillminder/internal/cli"
	"github.com/julianstephens/pillminder/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	return tui.Run(tui.Options{
		Session:   ctx.Session,
		Store:     ctx.Store,
		Notifier:  ctx.Notifier,
		WebOrigin: ctx.WebOrigin,
	})
}
