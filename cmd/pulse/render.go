package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	chatsession "deal-pulse/internal/pulse/chat-session"
	synthesizeresponse "deal-pulse/internal/pulse/synthesize-response"
)

// renderer prints assistant replies as they are appended. User messages are
// already on screen as typed input.
type renderer struct {
	out *bufio.Writer
}

func newRenderer(out *bufio.Writer) *renderer {
	return &renderer{out: out}
}

func (r *renderer) MessageAppended(msg chatsession.Message) {
	if msg.Role != chatsession.RoleAssistant {
		return
	}
	renderMessage(r.out, msg)
	r.out.Flush()
}

func (r *renderer) ComposingChanged(composing bool) {
	if composing {
		fmt.Fprintln(r.out, "  ...")
		r.out.Flush()
	}
}

func (r *renderer) SessionReset(messages []chatsession.Message) {
	fmt.Fprintln(r.out, "--- conversation reset ---")
	for _, msg := range messages {
		renderMessage(r.out, msg)
	}
	r.out.Flush()
}

func renderMessage(w io.Writer, msg chatsession.Message) {
	fmt.Fprintln(w, msg.Text)
	renderPayload(w, msg.Payload)
}

func renderPayload(w io.Writer, p synthesizeresponse.Payload) {
	switch data := p.(type) {
	case synthesizeresponse.FundraisingPayload:
		for _, pr := range data.Predictions {
			fmt.Fprintf(w, "  • %-14s %-18s %3d%%  next: %s\n", pr.Name, pr.Sector, pr.Probability, pr.ExpectedRound)
		}
	case synthesizeresponse.SuccessPayload:
		for _, pr := range data.Predictions {
			f := pr.Factors
			fmt.Fprintf(w, "  • %-14s score %d  (founder %d, timing %d, traction %d, network %d)\n",
				pr.Name, pr.SuccessScore, f.FounderQuality, f.MarketTiming, f.Traction, f.NetworkStrength)
		}
	case synthesizeresponse.RiskPayload:
		for _, pr := range data.Predictions {
			fmt.Fprintf(w, "  • %-14s risk %d  %s\n", pr.Name, pr.RiskScore, strings.Join(pr.RiskFactors, ", "))
		}
	case synthesizeresponse.SeriesAPayload:
		for _, pr := range data.Predictions {
			fmt.Fprintf(w, "  • %-14s %3d%%  %s\n", pr.Name, pr.Probability, strings.Join(pr.Factors, ", "))
		}
	case synthesizeresponse.OutliersPayload:
		for _, o := range data.Outliers {
			fmt.Fprintf(w, "  • %-14s %s (%d%% confidence)\n", o.Name, o.Pattern, o.Confidence)
		}
	case synthesizeresponse.FounderPayload:
		fmt.Fprintf(w, "  %s, %s\n  %s\n  %s\n", data.Founder.Name, data.Company, data.Background, strings.Join(data.Signals, " · "))
	case synthesizeresponse.ConvictionPayload:
		for _, b := range data.Buckets {
			fmt.Fprintf(w, "  • %-18s %2d  %s\n", b.Label, b.Count, b.Note)
		}
	case synthesizeresponse.NetworkPayload:
		for _, c := range data.Connections {
			fmt.Fprintf(w, "  • %s (%s)\n", c.Name, c.Sector)
		}
		fmt.Fprintf(w, "  %d warm intros, %d second-degree connections\n", data.WarmIntros, data.SecondDegree)
	}
}
