package bot

import "time"

// Config holds bot timing and evaluation settings
type Config struct {
	// ThinkDelay is how long a bot pauses before committing a decision
	ThinkDelay time.Duration
	// MaxIterations caps the bot turns played by one ProcessBotActions call;
	// zero means MaxBotIterations
	MaxIterations int

	Greedy Weights
	Deep   Weights
}

// DefaultConfig returns the standard bot configuration
func DefaultConfig() Config {
	greedy := Weights{
		SizeWeight:       10,
		CenterWeight:     1,
		CenterRadius:     19,
		ExpansionWeight:  2,
		BlockWeight:      1.5,
		CornerBonus:      5,
		EdgePenalty:      1,
		RandomnessFactor: 0.5,
	}
	deep := greedy
	deep.RandomnessFactor = 0.1

	return Config{
		ThinkDelay:    500 * time.Millisecond,
		MaxIterations: MaxBotIterations,
		Greedy:        greedy,
		Deep:          deep,
	}
}
