package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	applog "github.com/vovakirdan/strangerchat-server/internal/log"
	"github.com/vovakirdan/strangerchat-server/internal/proto"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		addr     string
		name     string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:           "chat-client",
		Short:         "Chat with a random stranger from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := applog.New(logLevel)
			return run(cmd.Context(), addr, name, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", "ws://localhost:3000/ws", "WebSocket address")
	flags.StringVarP(&name, "name", "n", "stranger", "display name")
	flags.StringVar(&logLevel, "log-level", "warn", "log level")

	return cmd
}

func run(parent context.Context, addr, name string, logger *zerolog.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	baseCtx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeSetName, Name: name}); err != nil {
		return fmt.Errorf("send name: %w", err)
	}

	fmt.Printf("Connected to %s as %s\n", addr, name)
	fmt.Println("Type messages and press Enter to send. /leave finds a new partner, /quit exits.")

	go func() {
		defer cancel()
		readLoop(ctx, conn, logger)
	}()

	writeLoop(ctx, conn, logger)
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn, logger *zerolog.Logger) {
	for {
		var frame proto.Frame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			logger.Warn().Err(err).Msg("read error")
			return
		}
		fmt.Println(formatFrame(frame))
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn, logger *zerolog.Logger) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			in, action := parseLine(line)
			switch action {
			case actionSkip:
				continue
			case actionQuit:
				return
			}
			if err := wsjson.Write(ctx, conn, in); err != nil {
				logger.Warn().Err(err).Msg("send error")
				return
			}
		}
	}
}

type lineAction int

const (
	actionSend lineAction = iota
	actionSkip
	actionQuit
)

// parseLine maps a line typed by the user to an outgoing frame.
func parseLine(line string) (proto.Inbound, lineAction) {
	text := strings.TrimSpace(line)
	switch text {
	case "":
		return proto.Inbound{}, actionSkip
	case "/quit":
		return proto.Inbound{}, actionQuit
	case "/leave":
		return proto.Inbound{Type: proto.InboundTypeLeaveChat}, actionSend
	}
	return proto.Inbound{Type: proto.InboundTypeChat, Message: line}, actionSend
}

func formatFrame(frame proto.Frame) string {
	switch frame.Type {
	case proto.OutboundTypeChat:
		return fmt.Sprintf("%s: %s", frame.UserName, frame.Message)
	case proto.OutboundTypeInfo, proto.OutboundTypePartner:
		return fmt.Sprintf("* %s", frame.Message)
	case proto.OutboundTypeOnlineCount:
		return fmt.Sprintf("* online: %d", frame.Count)
	case proto.OutboundTypeError:
		return fmt.Sprintf("! %s (%s)", frame.Message, frame.Code)
	default:
		return fmt.Sprintf("type=%s message=%s", frame.Type, frame.Message)
	}
}
