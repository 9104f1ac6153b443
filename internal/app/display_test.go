package app

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/relabs-tech/gesture_lock/internal/events"
)

type fakeOLED struct {
	frames []image.Image
	err    error
}

func (f *fakeOLED) Bounds() image.Rectangle { return image.Rect(0, 0, 128, 64) }

func (f *fakeOLED) Draw(_ image.Rectangle, src image.Image, _ image.Point) error {
	f.frames = append(f.frames, src)
	return f.err
}

func litPixels(img *image1bit.VerticalLSB) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.BitAt(x, y) == image1bit.On {
				n++
			}
		}
	}
	return n
}

func TestStatusLines(t *testing.T) {
	cases := []struct {
		ev       events.Event
		headline string
		detail   string
	}{
		{events.Event{Kind: events.KindStartup}, "READY", ""},
		{events.Event{Kind: events.KindStartup, Fault: "identity mismatch"}, "SELF-TEST FAIL", "check sensor"},
		{events.Event{Kind: events.KindIntent, Intent: "enroll"}, "ENROLL", "move after blinks"},
		{events.Event{Kind: events.KindIntent, Intent: "verify"}, "VERIFY", "move after blinks"},
		{events.Event{Kind: events.KindEnrolled}, "ENROLLED", ""},
		{events.Event{Kind: events.KindGranted, Score: 187}, "OPEN", "score 187/200"},
		{events.Event{Kind: events.KindDenied, Score: 12}, "DENIED", "score 12/200"},
		{events.Event{Kind: events.KindFault, Fault: "bus_error"}, "SENSOR FAULT", "bus_error"},
	}
	for _, tc := range cases {
		t.Run(string(tc.ev.Kind)+"/"+tc.headline, func(t *testing.T) {
			h, d := statusLines(tc.ev)
			assert.Equal(t, tc.headline, h)
			assert.Equal(t, tc.detail, d)
		})
	}
}

func TestStatusDisplay_DrawsFrame(t *testing.T) {
	oled := &fakeOLED{}
	d := NewStatusDisplay(oled)

	require.NoError(t, d.Publish(events.Event{Kind: events.KindGranted, Score: 150, Enrolled: true}))
	require.Len(t, oled.frames, 1)

	img, ok := oled.frames[0].(*image1bit.VerticalLSB)
	require.True(t, ok)
	assert.Equal(t, oled.Bounds(), img.Bounds())
	assert.Positive(t, litPixels(img))
}

func TestStatusDisplay_DifferentEventsRenderDifferently(t *testing.T) {
	bounds := image.Rect(0, 0, 128, 64)
	a := renderStatus(events.Event{Kind: events.KindGranted, Score: 150}, bounds)
	b := renderStatus(events.Event{Kind: events.KindFault, Fault: "not_ready"}, bounds)
	assert.NotEqual(t, a.Pix, b.Pix)
}

func TestStatusDisplay_WrapsDrawError(t *testing.T) {
	boom := errors.New("i2c nack")
	d := NewStatusDisplay(&fakeOLED{err: boom})

	err := d.Publish(events.Event{Kind: events.KindEnrolled})
	assert.ErrorIs(t, err, boom)
}
