package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/umputun/summarylive/pkg/live"
	"github.com/umputun/summarylive/pkg/notify"
	"github.com/umputun/summarylive/pkg/push"
)

// console renders session updates to a terminal. Session serializes calls, no locking here.
type console struct {
	out io.Writer

	header *color.Color
	title  *color.Color
	muted  *color.Color
	info   *color.Color
	alert  *color.Color
}

func newConsole(out io.Writer) *console {
	return &console{
		out:    out,
		header: color.New(color.FgCyan, color.Bold),
		title:  color.New(color.Bold),
		muted:  color.New(color.FgHiBlack),
		info:   color.New(color.FgGreen),
		alert:  color.New(color.FgHiRed),
	}
}

// ViewChanged prints the derived view, newest first
func (c *console) ViewChanged(v live.View) {
	c.header.Fprintf(c.out, "\n== summaries: %d of %d, filter: %s ==\n", len(v.Items), v.Total, v.Filter)
	if len(v.Items) == 0 {
		c.muted.Fprintln(c.out, "no summaries")
		return
	}
	for _, s := range v.Items {
		date := "----------"
		if d, ok := s.PublishedAt.Date(); ok {
			date = d.String()
		}
		c.muted.Fprintf(c.out, "%s ", date)
		c.title.Fprint(c.out, s.Title)
		if len(s.Categories) > 0 {
			c.muted.Fprintf(c.out, " [%s]", strings.Join(s.Categories, ", "))
		}
		fmt.Fprintf(c.out, "\n    %s\n", s.Preview())
	}
}

// StateChanged prints push channel state transitions
func (c *console) StateChanged(st push.State) {
	if st == push.StateOpen {
		c.info.Fprintf(c.out, "push channel: %s\n", st)
		return
	}
	c.muted.Fprintf(c.out, "push channel: %s\n", st)
}

// Notice prints a notice, errors highlighted
func (c *console) Notice(n notify.Notice) {
	if n.Level == notify.LevelError {
		c.alert.Fprintf(c.out, "! %s: %s\n", n.Title, n.Message)
		return
	}
	c.info.Fprintf(c.out, "* %s: %s\n", n.Title, n.Message)
}
