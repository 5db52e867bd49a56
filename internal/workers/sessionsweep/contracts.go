package sessionsweep

type (
	Sweeper interface {
		Sweep() int
		Len() int
	}
)
