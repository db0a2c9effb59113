/*
Package hwvcd replays and records Value Change Dump (VCD) traces through
emulated digital pins, for testing hardware drivers without hardware.

A Reader decodes a VCD stream and updates the state of the input pins
requested with Reader.Pin as it advances through the trace:

	r, err := hwvcd.NewReader(f)
	if err != nil {
		// handle error
	}
	data := r.Pin("libsigrok", "data")
	for r.Next() {
		t := r.Time()
		// ...
	}
	if err := r.Err(); err != nil {
		// handle error
	}

Note that Next applies all value changes preceding the next timestamp before
returning it: after Next returns true, pin states are the ones that were
current at the previous timestamp.

A WriterBuilder declares output pins and builds a Writer that samples them:

	b, err := hwvcd.NewWriterBuilder(f)
	// ...
	led, err := b.AddPushPullPin("led")
	// ...
	w, err := b.Build()
	// ...
	w.Timestamp(hwvcd.Nanoseconds(0))
	led.SetHigh()
	w.Sample()

Pins are backed by atomic states from package pins and can be handed to code
running in other goroutines.

*/
package hwvcd
