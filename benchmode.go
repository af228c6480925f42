package fineclock

// benchModeKind tags which state the driver loop is in.
type benchModeKind int

const (
	modeTest benchModeKind = iota
	modeTune
	modeCollect
)

// benchMode is the driver's state machine tag: Test, Tune{sample_size}
// or Collect{sample_size}.
type benchMode struct {
	kind       benchModeKind
	sampleSize uint32
}

func testMode() benchMode                  { return benchMode{kind: modeTest} }
func tuneMode(sampleSize uint32) benchMode { return benchMode{kind: modeTune, sampleSize: sampleSize} }
func collectMode(sampleSize uint32) benchMode {
	return benchMode{kind: modeCollect, sampleSize: sampleSize}
}

func (m benchMode) isTest() bool    { return m.kind == modeTest }
func (m benchMode) isTune() bool    { return m.kind == modeTune }
func (m benchMode) isCollect() bool { return m.kind == modeCollect }

// sampleSizeOf returns the number of iterations per sample for the
// current mode; Test always reports 1.
func (m benchMode) sampleSizeOf() uint32 {
	if m.kind == modeTest {
		return 1
	}
	return m.sampleSize
}
