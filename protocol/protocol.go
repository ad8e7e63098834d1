package protocol

import "fmt"

// Cmd represents a command
type Cmd int

const (
	Null Cmd = iota
	NewJoiner
	Start
	HasStarted
	Bid
	PlayCard
	StateChanged
	PlayerLeft
	Rejected
	GameOver
)

var cmdNames = map[Cmd]string{
	Null:         "Null",
	NewJoiner:    "NewJoiner",
	Start:        "Start",
	HasStarted:   "HasStarted",
	Bid:          "Bid",
	PlayCard:     "PlayCard",
	StateChanged: "StateChanged",
	PlayerLeft:   "PlayerLeft",
	Rejected:     "Rejected",
	GameOver:     "GameOver",
}

var nameToCmd = map[string]Cmd{}

func init() {
	for c, name := range cmdNames {
		nameToCmd[name] = c
	}
}

func (c Cmd) String() string {
	return cmdNames[c]
}

// MarshalText keeps commands human-readable on the wire.
func (c Cmd) MarshalText() ([]byte, error) {
	name, ok := cmdNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown command %d", int(c))
	}
	return []byte(name), nil
}

func (c *Cmd) UnmarshalText(data []byte) error {
	cmd, ok := nameToCmd[string(data)]
	if !ok {
		return fmt.Errorf("unknown command %q", string(data))
	}
	*c = cmd
	return nil
}
