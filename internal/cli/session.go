package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ktauqeer04/mock-interview/internal/api"
	"github.com/ktauqeer04/mock-interview/internal/config"
	"github.com/ktauqeer04/mock-interview/internal/negotiation"
	"github.com/ktauqeer04/mock-interview/internal/question"
	"github.com/ktauqeer04/mock-interview/internal/rtc"
	"github.com/ktauqeer04/mock-interview/internal/signaling"
	"github.com/ktauqeer04/mock-interview/internal/store"
	"github.com/ktauqeer04/mock-interview/internal/ui"
)

const (
	// The creator offers shortly after both sides are in the room; the joiner
	// asks for an offer a bit earlier instead of racing with its own.
	impoliteKickoffDelay = time.Second
	politeKickoffDelay   = 500 * time.Millisecond

	// codePollInterval is how often a shared code file is re-read.
	codePollInterval = 2 * time.Second
)

type sessionParams struct {
	cfg       *config.Config
	rest      *api.Client
	room      *store.Room
	question  *question.Question
	email     string
	peerEmail string
	role      negotiation.Role
	codeFile  string
}

// Events from pion's goroutines, funneled into the session loop so the
// negotiation engine stays single-threaded.
type (
	localCandidateEvent struct{ candidate json.RawMessage }
	connStateEvent      struct{ state string }
	peerHelloEvent      struct{ hello rtc.HelloPayload }
)

func runSession(ctx context.Context, p sessionParams) error {
	fmt.Println(ui.QuestionView(p.question))

	stopSpinner := ui.RunConnectionSpinner("Connecting to room channel...")
	client := signaling.NewClient(p.cfg.WebSocketURL())
	if err := client.Connect(); err != nil {
		stopSpinner()
		return NewError("connect to server", err)
	}
	defer client.Close()

	handler := signaling.NewHandler(client)
	go handler.Start()

	if err := client.Join(p.room.ID, p.email); err != nil {
		stopSpinner()
		return NewError("join room channel", err)
	}

	// A rejected join comes back as an error message; catch it here rather
	// than inside the session view.
	select {
	case text := <-handler.Error:
		stopSpinner()
		return WrapError("join room channel", ErrSignalingError, text)
	case <-time.After(500 * time.Millisecond):
	}

	sender := signaling.NewSender(client, p.room.ID)

	events := make(chan any, 64)
	callbacks := rtc.Callbacks{
		OnCandidate: func(c json.RawMessage) {
			events <- localCandidateEvent{candidate: c}
		},
		OnConnectionState: func(state string) {
			events <- connStateEvent{state: state}
		},
		OnHello: func(hello rtc.HelloPayload) {
			events <- peerHelloEvent{hello: hello}
		},
	}

	peer, err := rtc.NewPeer(p.cfg, p.email, callbacks, slog.Default())
	if err != nil {
		stopSpinner()
		return WrapError("create peer connection", ErrConnectionFailed, err.Error())
	}
	if p.role == negotiation.RoleImpolite {
		if err := peer.OpenPresence(callbacks); err != nil {
			stopSpinner()
			return WrapError("open presence channel", ErrConnectionFailed, err.Error())
		}
	}
	stopSpinner()

	engine := negotiation.NewEngine(p.role, peer, sender, slog.Default())

	view := ui.NewSession(ui.SessionOptions{
		RoomID:        p.room.ID,
		QuestionTitle: p.question.Title,
		Difficulty:    p.question.Difficulty,
		PeerEmail:     p.peerEmail,
		ExpiresAt:     p.room.ExpiresAt,
	})

	done := make(chan struct{})
	loopDone := make(chan struct{})
	var peerLeft bool
	go func() {
		defer close(loopDone)
		peerLeft = sessionLoop(p, engine, sender, handler, view, events, done)
	}()

	// An interrupt cancels ctx; end the view the same way a quit key would.
	go func() {
		select {
		case <-ctx.Done():
			view.Quit()
		case <-done:
		}
	}()

	start := time.Now()
	outcome, runErr := view.Run()
	close(done)
	<-loopDone

	if peerLeft {
		PrintErr(NewError("session ended", ErrPeerDisconnected))
	}

	reportCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.rest.ReportResult(reportCtx, p.room.ID, p.email, p.question.ID, outcome.Solved); err != nil {
		ui.PrintWarning("could not report result: " + err.Error())
	}

	ui.RenderSessionSummary("📊 Session Summary", ui.SessionSummary{
		Question:   p.question.Title,
		Difficulty: p.question.Difficulty,
		Peer:       p.peerEmail,
		Duration:   time.Since(start).Round(time.Second).String(),
		Solved:     outcome.Solved,
	})
	return runErr
}

// sessionLoop feeds every signaling and connection event into the engine from
// one goroutine. It owns the engine until done closes, and reports whether the
// peer left mid-session.
func sessionLoop(
	p sessionParams,
	engine *negotiation.Engine,
	sender *signaling.Sender,
	handler *signaling.Handler,
	view *ui.Session,
	events chan any,
	done chan struct{},
) (peerLeft bool) {
	logger := slog.Default()

	kickoffDelay := impoliteKickoffDelay
	if p.role == negotiation.RolePolite {
		kickoffDelay = politeKickoffDelay
	}
	kickoff := time.After(kickoffDelay)

	var codeTick <-chan time.Time
	var lastCode string
	if p.codeFile != "" {
		ticker := time.NewTicker(codePollInterval)
		defer ticker.Stop()
		codeTick = ticker.C
	}

	for {
		select {
		case <-done:
			if err := engine.Close(); err != nil {
				logger.Debug("engine close", "error", err)
			}
			return peerLeft

		case <-kickoff:
			var err error
			if p.role == negotiation.RoleImpolite {
				err = engine.Initiate()
			} else {
				err = engine.RequestOffer()
			}
			if err != nil {
				logger.Warn("negotiation kickoff failed", "error", err)
			}

		case offer := <-handler.Offer:
			if err := engine.HandleOffer(offer); err != nil {
				logger.Warn("offer handling failed", "error", err)
			}

		case answer := <-handler.Answer:
			if err := engine.HandleAnswer(answer); err != nil {
				logger.Warn("answer handling failed", "error", err)
			}

		case candidate := <-handler.Candidate:
			if err := engine.HandleCandidate(candidate); err != nil {
				logger.Warn("candidate handling failed", "error", err)
			}

		case <-handler.RequestOffer:
			if err := engine.HandleRequestOffer(); err != nil {
				logger.Warn("request-offer handling failed", "error", err)
			}

		case code := <-handler.CodeUpdate:
			view.Send(ui.CodeUpdateMsg{Code: code})

		case <-handler.PeerLeft:
			peerLeft = true
			view.Send(ui.PeerLeftMsg{})

		case text := <-handler.Error:
			view.Send(ui.SessionErrorMsg{Text: text})

		case ev := <-events:
			switch ev := ev.(type) {
			case localCandidateEvent:
				if err := sender.SendCandidate(ev.candidate); err != nil {
					logger.Warn("candidate send failed", "error", err)
				}
			case connStateEvent:
				view.Send(ui.ConnStateMsg{State: ev.state})
			case peerHelloEvent:
				logger.Debug("peer announced", "email", ev.hello.Email, "version", ev.hello.ClientVersion)
			}

		case <-codeTick:
			code, err := os.ReadFile(p.codeFile)
			if err != nil {
				logger.Warn("code file read failed", "path", p.codeFile, "error", err)
				continue
			}
			if string(code) == lastCode {
				continue
			}
			lastCode = string(code)
			if err := sender.SendCodeUpdate(lastCode); err != nil {
				logger.Warn("code update send failed", "error", err)
			}
		}
	}
}
