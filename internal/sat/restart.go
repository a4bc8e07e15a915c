package sat

import "github.com/conflictdriven/cdclsat/movingavg"

// restartController decides when the search should abandon its current
// trail and start over from an empty decision stack, using the same
// "trail length below its recent average" signal as Glucose-family
// restarts, applied here to trail length rather than learned-clause LBD
// since this solver does not compute LBD.
type restartController struct {
	short *movingavg.Queue // recent trail lengths, narrow window
	long  *movingavg.Queue // recent trail lengths, wide window

	learnedSinceRestart int
	minLearnedGap       int
}

const (
	defaultShortWindow = 16
	minLongWindow      = 64
)

// newRestartController sizes the two windows from opts, falling back to a
// long window of 2.5x the variable count (at least minLongWindow), enough
// conflicts for the long mean to describe the instance rather than the last
// few decisions.
func newRestartController(opts Options, numVars int) *restartController {
	short := opts.RestartShortWindow
	if short <= 0 {
		short = defaultShortWindow
	}
	long := opts.RestartLongWindow
	if long <= 0 {
		long = numVars * 5 / 2
		if long < minLongWindow {
			long = minLongWindow
		}
	}
	return &restartController{
		short:         movingavg.New(short),
		long:          movingavg.New(long),
		minLearnedGap: 20,
	}
}

// observe records the trail length at the moment a conflict was found.
func (r *restartController) observe(trailLen int) {
	r.short.Push(float64(trailLen))
	r.long.Push(float64(trailLen))
}

// noteLearned records that one more (newly distinct) clause was learned
// since the last restart.
func (r *restartController) noteLearned() {
	r.learnedSinceRestart++
}

// shouldRestart reports whether the accumulated signal crosses the restart
// threshold: at least minLearnedGap new learned clauses since the last
// restart, and the short-window trail-length average has dropped below the
// long-window average (the search is thrashing at shallow depth).
func (r *restartController) shouldRestart() bool {
	if r.learnedSinceRestart < r.minLearnedGap {
		return false
	}
	if !r.long.Full() {
		return false
	}
	return r.short.Mean() < r.long.Mean()
}

func (r *restartController) reset() {
	r.learnedSinceRestart = 0
}
