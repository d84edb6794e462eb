package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"

	"github.com/racp-protocol/racp-go/pkg/command"
	"github.com/racp-protocol/racp-go/pkg/identity"
	"github.com/racp-protocol/racp-go/pkg/log"
	"github.com/racp-protocol/racp-go/pkg/pairing"
	"github.com/racp-protocol/racp-go/pkg/sessionkey"
)

// pairSession holds both ends of the demonstration: the device-side
// coordinator and the controller-side identity.
type pairSession struct {
	device        *pairing.Coordinator
	controller    *identity.KeyPair
	controllerKey []byte // controller's derived session key
	auth          *command.Authenticator
	rl            *readline.Instance
}

// newPairSession creates the demo session.
func newPairSession(cfg Config, logger *slog.Logger) (*pairSession, error) {
	device, err := pairing.NewCoordinator(pairing.Config{
		CodeTTL:     cfg.CodeTTL,
		MaxAttempts: cfg.MaxAttempts,
		Logger:      log.NewSlogAdapter(logger),
		Role:        log.RoleDevice,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create coordinator: %w", err)
	}

	controller, err := identity.Generate(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate controller identity: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "racp> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &pairSession{
		device:     device,
		controller: controller,
		auth:       command.NewAuthenticator(),
		rl:         rl,
	}, nil
}

// Run starts the interactive command loop.
func (s *pairSession) Run() error {
	defer s.rl.Close()

	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "code":
			s.cmdCode()

		case "payload":
			s.cmdPayload()

		case "enter":
			s.cmdEnter(args)

		case "exchange":
			s.cmdExchange()

		case "send":
			s.cmdSend(args)

		case "status":
			s.cmdStatus()

		case "reset":
			s.cmdReset()

		case "exit", "quit":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return nil

		default:
			fmt.Fprintf(s.rl.Stdout(), "unknown command %q, try 'help'\n", cmd)
		}
	}
}

func (s *pairSession) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `Commands:
  code             generate (or redisplay) the device pairing code
  payload          print the QR payload the device would display
  enter <code>     enter the code as the controller
  exchange         complete the key exchange
  send <type>      sign a command as device, verify as controller
  status           show coordinator state and attempts
  reset            reset the pairing coordinator
  exit             quit`)
}

func (s *pairSession) cmdCode() {
	code, err := s.device.GeneratePairingCode()
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "cannot generate code: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "pairing code: %s (state %s)\n", code, s.device.State())
}

func (s *pairSession) cmdPayload() {
	code := s.device.PairingCode()
	if code == "" {
		fmt.Fprintln(s.rl.Stdout(), "no active code, run 'code' first")
		return
	}
	p := &pairing.Payload{
		Version:           pairing.PayloadVersion,
		Code:              code,
		ExchangePublicKey: s.device.Identity().ExchangePublicKey,
	}
	fmt.Fprintln(s.rl.Stdout(), p.String())
}

func (s *pairSession) cmdEnter(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "usage: enter <code>")
		return
	}

	if !s.device.IsPairingCodeValid() {
		fmt.Fprintln(s.rl.Stdout(), "code expired or absent, run 'code' (or 'reset' first)")
		return
	}

	if s.device.OnCodeEntered(args[0]) {
		fmt.Fprintf(s.rl.Stdout(), "code accepted (state %s), run 'exchange'\n", s.device.State())
		return
	}

	if s.device.State() == pairing.StateLockedOut {
		fmt.Fprintln(s.rl.Stdout(), "locked out, 'reset' to start over")
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "wrong code, %d attempts remaining\n", s.device.AttemptsRemaining())
}

func (s *pairSession) cmdExchange() {
	if err := s.device.OnKeyExchangeComplete(s.controller.ExchangePublicKey); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "key exchange failed: %v\n", err)
		return
	}

	key, err := sessionkey.Derive(s.controller.Seed(), s.device.Identity().ExchangePublicKey)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "controller derivation failed: %v\n", err)
		return
	}
	s.controllerKey = key

	match := bytes.Equal(key, s.device.SessionKey())
	fmt.Fprintf(s.rl.Stdout(), "paired, independent derivations match: %v\n", match)
}

func (s *pairSession) cmdSend(args []string) {
	if s.device.State() != pairing.StatePaired {
		fmt.Fprintln(s.rl.Stdout(), "not paired yet")
		return
	}

	cmdType := command.TypeLock
	if len(args) > 0 {
		cmdType = strings.ToUpper(args[0])
	}

	signed, err := s.auth.Sign(command.New(cmdType, nil), s.device.SessionKey())
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "signing failed: %v\n", err)
		return
	}

	ok := s.auth.Verify(signed, s.controllerKey)
	fmt.Fprintf(s.rl.Stdout(), "signed %s at %d, controller verification: %v\n",
		signed.Command.Type, signed.Timestamp, ok)
}

func (s *pairSession) cmdStatus() {
	fmt.Fprintf(s.rl.Stdout(), "state: %s\n", s.device.State())
	fmt.Fprintf(s.rl.Stdout(), "session: %s\n", s.device.SessionID())
	fmt.Fprintf(s.rl.Stdout(), "failed attempts: %d (remaining %d)\n",
		s.device.FailedAttempts(), s.device.AttemptsRemaining())
	fmt.Fprintf(s.rl.Stdout(), "code valid: %v\n", s.device.IsPairingCodeValid())
	if s.device.State() == pairing.StatePaired {
		fmt.Fprintf(s.rl.Stdout(), "session key: %d bytes\n", len(s.device.SessionKey()))
	}
}

func (s *pairSession) cmdReset() {
	if err := s.device.Reset(); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "reset failed: %v\n", err)
		return
	}
	s.controllerKey = nil
	fmt.Fprintf(s.rl.Stdout(), "reset, state %s\n", s.device.State())
}
