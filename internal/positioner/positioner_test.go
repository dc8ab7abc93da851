package positioner

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/traypos/internal/geometry"
)

// fakeProvider serves a fixed set of displays and a fixed cursor.
type fakeProvider struct {
	displays   []geometry.Display
	cursor     geometry.Point
	cursorErr  error
	displayErr error

	mu      sync.Mutex
	queries []geometry.Point
}

func (f *fakeProvider) CursorScreenPoint() (geometry.Point, error) {
	if f.cursorErr != nil {
		return geometry.Point{}, f.cursorErr
	}
	return f.cursor, nil
}

func (f *fakeProvider) DisplayNearestPoint(p geometry.Point) (geometry.Display, error) {
	f.mu.Lock()
	f.queries = append(f.queries, p)
	f.mu.Unlock()
	if f.displayErr != nil {
		return geometry.Display{}, f.displayErr
	}
	return geometry.NearestDisplay(f.displays, p)
}

// fakeWindow records SetPosition calls.
type fakeWindow struct {
	bounds geometry.Rect
	moves  int
}

func (w *fakeWindow) Bounds() geometry.Rect { return w.bounds }

func (w *fakeWindow) SetPosition(x, y int) {
	w.bounds.X = x
	w.bounds.Y = y
	w.moves++
}

var fullHD = geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

func singleDisplay(workArea geometry.Rect) *fakeProvider {
	return &fakeProvider{displays: []geometry.Display{{ID: 1, Bounds: fullHD, WorkArea: workArea}}}
}

func bottomTaskbar() *fakeProvider {
	return singleDisplay(geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1040})
}

func rightTaskbar() *fakeProvider {
	return singleDisplay(geometry.Rect{X: 0, Y: 0, Width: 1880, Height: 1080})
}

func TestTaskbarEdge(t *testing.T) {
	tests := []struct {
		name     string
		workArea geometry.Rect
		expected TaskbarPosition
	}{
		{"top", geometry.Rect{X: 0, Y: 30, Width: 1920, Height: 1050}, TaskbarTop},
		{"left", geometry.Rect{X: 48, Y: 0, Width: 1872, Height: 1080}, TaskbarLeft},
		{"bottom", geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1040}, TaskbarBottom},
		{"right", geometry.Rect{X: 0, Y: 0, Width: 1880, Height: 1080}, TaskbarRight},
		{"no taskbar is bottom", fullHD, TaskbarBottom},
		{"top wins over left", geometry.Rect{X: 48, Y: 30, Width: 1872, Height: 1050}, TaskbarTop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TaskbarEdge(geometry.Display{Bounds: fullHD, WorkArea: tt.workArea})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTaskbarEdge_OffsetDisplay(t *testing.T) {
	// Secondary display to the left of the primary with a top panel.
	d := geometry.Display{
		Bounds:   geometry.Rect{X: -1280, Y: 0, Width: 1280, Height: 1024},
		WorkArea: geometry.Rect{X: -1280, Y: 28, Width: 1280, Height: 996},
	}
	assert.Equal(t, TaskbarTop, TaskbarEdge(d))

	d.WorkArea = geometry.Rect{X: -1240, Y: 0, Width: 1240, Height: 1024}
	assert.Equal(t, TaskbarLeft, TaskbarEdge(d))
}

func TestTaskbarPosition_QueriesAnchorOrigin(t *testing.T) {
	provider := rightTaskbar()
	p := New(provider, WithPlatform("windows"))

	pos, err := p.TaskbarPosition(geometry.Rect{X: 1880, Y: 500, Width: 40, Height: 40})
	require.NoError(t, err)
	assert.Equal(t, TaskbarRight, pos)
	assert.Equal(t, []geometry.Point{{X: 1880, Y: 500}}, provider.queries)
}

func TestCalculate_BottomTaskbarOverflowRight(t *testing.T) {
	p := New(bottomTaskbar(), WithPlatform("windows"))

	pt, err := p.Calculate(
		geometry.Rect{Width: 300, Height: 400},
		geometry.Rect{X: 1800, Y: 1040, Width: 40, Height: 40},
		nil,
	)
	require.NoError(t, err)
	// Centred x would be 1670 and overflow 1920, so the window is re-anchored
	// with its right edge on the icon's right edge.
	assert.Equal(t, geometry.Point{X: 1540, Y: 640}, pt)
}

func TestCalculate_RightTaskbarDefaultDown(t *testing.T) {
	p := New(rightTaskbar(), WithPlatform("windows"))

	pt, err := p.Calculate(
		geometry.Rect{Width: 300, Height: 200},
		geometry.Rect{X: 1880, Y: 500, Width: 40, Height: 40},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, geometry.Point{X: 1580, Y: 500}, pt)
}

func TestCalculate_TopTaskbar(t *testing.T) {
	p := New(singleDisplay(geometry.Rect{X: 0, Y: 30, Width: 1920, Height: 1050}), WithPlatform("darwin"))

	pt, err := p.Calculate(
		geometry.Rect{Width: 300, Height: 200},
		geometry.Rect{X: 900, Y: 0, Width: 30, Height: 30},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, geometry.Point{X: 765, Y: 30}, pt)

	// Near the left screen edge the centred window would start at -35.
	pt, err = p.Calculate(
		geometry.Rect{Width: 300, Height: 200},
		geometry.Rect{X: 100, Y: 0, Width: 30, Height: 30},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, geometry.Point{X: 100, Y: 30}, pt)
}

func TestCalculate_LeftTaskbarOverflowBottom(t *testing.T) {
	p := New(singleDisplay(geometry.Rect{X: 48, Y: 0, Width: 1872, Height: 1080}), WithPlatform("windows"))

	pt, err := p.Calculate(
		geometry.Rect{Width: 300, Height: 400},
		geometry.Rect{X: 0, Y: 900, Width: 48, Height: 48},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, geometry.Point{X: 48, Y: 548}, pt)
}

func TestCalculate_ExplicitXAlign(t *testing.T) {
	p := New(bottomTaskbar(), WithPlatform("windows"))
	window := geometry.Rect{Width: 300, Height: 400}
	anchor := geometry.Rect{X: 1800, Y: 1040, Width: 40, Height: 40}

	tests := []struct {
		name     string
		align    XAlign
		anchor   geometry.Rect
		expected int
	}{
		{"left honoured on overflow", XAlignLeft, anchor, 1540},
		{"right overflowing is corrected", XAlignRight, anchor, 1540},
		{"explicit center overflowing is corrected", XAlignCenter, anchor, 1540},
		{"right honoured mid screen", XAlignRight, geometry.Rect{X: 800, Y: 1040, Width: 40, Height: 40}, 800},
		{"left honoured mid screen", XAlignLeft, geometry.Rect{X: 800, Y: 1040, Width: 40, Height: 40}, 540},
		{"right honoured at left edge", XAlignRight, geometry.Rect{X: 10, Y: 1040, Width: 40, Height: 40}, 10},
		{"left at left edge is corrected", XAlignLeft, geometry.Rect{X: 10, Y: 1040, Width: 40, Height: 40}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt, err := p.Calculate(window, tt.anchor, &Alignment{X: tt.align})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, pt.X)
			assert.Equal(t, 640, pt.Y)
		})
	}
}

func TestCalculate_ExplicitYAlign(t *testing.T) {
	p := New(rightTaskbar(), WithPlatform("windows"))
	window := geometry.Rect{Width: 300, Height: 200}

	tests := []struct {
		name     string
		align    YAlign
		anchor   geometry.Rect
		expected int
	}{
		{"up", YAlignUp, geometry.Rect{X: 1880, Y: 500, Width: 40, Height: 40}, 340},
		{"middle", YAlignMiddle, geometry.Rect{X: 1880, Y: 500, Width: 40, Height: 40}, 420},
		{"down", YAlignDown, geometry.Rect{X: 1880, Y: 500, Width: 40, Height: 40}, 500},
		{"down overflowing bottom is corrected", YAlignDown, geometry.Rect{X: 1880, Y: 1000, Width: 40, Height: 40}, 840},
		{"up honoured at bottom", YAlignUp, geometry.Rect{X: 1880, Y: 1000, Width: 40, Height: 40}, 840},
		{"up above screen is corrected", YAlignUp, geometry.Rect{X: 1880, Y: 10, Width: 40, Height: 40}, 10},
		{"middle above screen is corrected", YAlignMiddle, geometry.Rect{X: 1880, Y: 10, Width: 40, Height: 40}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt, err := p.Calculate(window, tt.anchor, &Alignment{Y: tt.align})
			require.NoError(t, err)
			assert.Equal(t, 1580, pt.X)
			assert.Equal(t, tt.expected, pt.Y)
		})
	}
}

func TestCalculate_HalfPixelRoundsUp(t *testing.T) {
	p := New(bottomTaskbar(), WithPlatform("windows"))

	// 500 + 20.5 - 150 = 370.5
	pt, err := p.Calculate(geometry.Rect{Width: 300, Height: 400}, geometry.Rect{X: 500, Y: 1040, Width: 41, Height: 40}, nil)
	require.NoError(t, err)
	assert.Equal(t, 371, pt.X)

	p = New(rightTaskbar(), WithPlatform("windows"))
	// 100 + 20.5 - 100 = 20.5
	pt, err = p.Calculate(geometry.Rect{Width: 300, Height: 200}, geometry.Rect{X: 1880, Y: 100, Width: 40, Height: 41}, &Alignment{Y: YAlignMiddle})
	require.NoError(t, err)
	assert.Equal(t, 21, pt.Y)
}

func TestRound_HalvesTowardsPositiveInfinity(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0.5, 1},
		{1.5, 2},
		{-0.5, 0},
		{-1.5, -1},
		{-1.6, -2},
		{2.4, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, round(tt.in), "round(%v)", tt.in)
	}
}

func TestCalculate_LinuxUsesCursor(t *testing.T) {
	provider := singleDisplay(fullHD)
	provider.cursor = geometry.Point{X: 960, Y: 540}
	p := New(provider, WithPlatform(PlatformLinux))

	placement, err := p.Place(
		geometry.Rect{Width: 300, Height: 200},
		geometry.Rect{X: 5, Y: 5, Width: 22, Height: 22}, // ignored on linux
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, TaskbarBottom, placement.Taskbar)
	assert.Equal(t, geometry.Rect{X: 960, Y: 540}, placement.Anchor)
	assert.Equal(t, geometry.Point{X: 810, Y: 880}, placement.Point)
	assert.Equal(t, []geometry.Point{{X: 960, Y: 540}}, provider.queries)
}

func TestCalculate_MultiMonitorNegativeOrigin(t *testing.T) {
	provider := &fakeProvider{displays: []geometry.Display{
		{
			ID:       1,
			Bounds:   geometry.Rect{X: -1280, Y: 0, Width: 1280, Height: 1024},
			WorkArea: geometry.Rect{X: -1280, Y: 0, Width: 1280, Height: 984},
		},
		{ID: 2, Bounds: fullHD, WorkArea: geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1040}},
	}}
	p := New(provider, WithPlatform("windows"))

	placement, err := p.Place(
		geometry.Rect{Width: 300, Height: 400},
		geometry.Rect{X: -1270, Y: 990, Width: 24, Height: 24},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, 1, placement.Display.ID)
	assert.Equal(t, TaskbarBottom, placement.Taskbar)
	// Centred x (-1408) is left of the display, so the window starts at the icon.
	assert.Equal(t, geometry.Point{X: -1270, Y: 584}, placement.Point)
}

func TestCalculate_ProviderErrorsSurfaceUnchanged(t *testing.T) {
	errDisplay := errors.New("display lookup failed")
	provider := bottomTaskbar()
	provider.displayErr = errDisplay

	p := New(provider, WithPlatform("windows"))
	_, err := p.Calculate(geometry.Rect{Width: 10, Height: 10}, geometry.Rect{}, nil)
	assert.Equal(t, errDisplay, err)

	_, err = p.TaskbarPosition(geometry.Rect{})
	assert.Equal(t, errDisplay, err)

	errCursor := errors.New("no pointer")
	provider = bottomTaskbar()
	provider.cursorErr = errCursor
	p = New(provider, WithPlatform(PlatformLinux))
	_, err = p.Calculate(geometry.Rect{Width: 10, Height: 10}, geometry.Rect{}, nil)
	assert.Equal(t, errCursor, err)
	assert.Empty(t, provider.queries)
}

func TestCalculate_Deterministic(t *testing.T) {
	p := New(bottomTaskbar(), WithPlatform("windows"))
	window := geometry.Rect{Width: 300, Height: 400}
	anchor := geometry.Rect{X: 1800, Y: 1040, Width: 40, Height: 40}

	first, err := p.Calculate(window, anchor, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]geometry.Point, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = p.Calculate(window, anchor, nil)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, first, got)
	}
}

func TestCalculate_OverflowKeepsWindowOnDisplay(t *testing.T) {
	p := New(bottomTaskbar(), WithPlatform("windows"))
	window := geometry.Rect{Width: 300, Height: 400}

	for x := 0; x+40 <= fullHD.Width; x += 37 {
		anchor := geometry.Rect{X: x, Y: 1040, Width: 40, Height: 40}
		pt, err := p.Calculate(window, anchor, nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, pt.X, fullHD.X, "anchor x=%d", x)
		assert.LessOrEqual(t, pt.X+window.Width, fullHD.Right(), "anchor x=%d", x)
	}
}

func TestPosition_MovesWithoutResizing(t *testing.T) {
	p := New(rightTaskbar(), WithPlatform("windows"))
	w := &fakeWindow{bounds: geometry.Rect{X: 3, Y: 4, Width: 300, Height: 200}}

	err := p.Position(w, geometry.Rect{X: 1880, Y: 500, Width: 40, Height: 40}, nil)
	require.NoError(t, err)
	assert.Equal(t, geometry.Rect{X: 1580, Y: 500, Width: 300, Height: 200}, w.bounds)
	assert.Equal(t, 1, w.moves)
}

func TestPosition_ErrorLeavesWindowAlone(t *testing.T) {
	provider := rightTaskbar()
	provider.displayErr = errors.New("boom")
	p := New(provider, WithPlatform("windows"))
	w := &fakeWindow{bounds: geometry.Rect{Width: 300, Height: 200}}

	err := p.Position(w, geometry.Rect{}, nil)
	assert.Error(t, err)
	assert.Equal(t, 0, w.moves)
}

func TestNew_Defaults(t *testing.T) {
	p := New(bottomTaskbar())
	assert.NotEmpty(t, p.Platform())

	p = New(bottomTaskbar(), WithPlatform(""), WithLogger(nil))
	assert.NotEmpty(t, p.Platform())
	assert.NotNil(t, p.logger)
}
