package share

import (
	"github.com/atotto/clipboard"

	"github.com/julianstephens/pillminder/internal/cli"
	"github.com/julianstephens/pillminder/internal/logger"
)

var clipboardWrite = clipboard.WriteAll

type ShareCmd struct {
	Copy bool `help:"Copy the link to the clipboard." short:"c"`
}

func (c *ShareCmd) Run(ctx *cli.Context) error {
	if err := ctx.Writable(); err != nil {
		return err
	}

	url, err := ctx.Session.CreateShareLink(ctx.Context(), ctx.WebOrigin)
	if err != nil {
		return err
	}
	ctx.Println("Share this read-only link with a caregiver:")
	ctx.Printf("  %s\n", url)

	if c.Copy {
		if err := clipboardWrite(url); err != nil {
			logger.Warn("Clipboard unavailable", "error", err)
			ctx.Println("Could not copy to the clipboard.")
			return nil
		}
		ctx.Println("Copied to clipboard.")
	}
	return nil
}
