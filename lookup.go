package hl7tree

// findSegment locates the occurrence of loc.Segment addressed by loc.SegmentIndex
// within msg. When create is true and fewer occurrences exist than loc.SegmentIndex
// requires, blank segments of the right type are appended until it does.
func findSegment(msg Element, loc *Location, create bool) (Element, bool) {
	wantIndex := loc.SegmentIndex
	if wantIndex < 0 {
		wantIndex = 0
	}

	occurrence := 0
	for i := 1; i <= msg.Count(); i++ {
		seg := msg.At(i)
		if seg.At(0).Value() == loc.Segment {
			if occurrence == wantIndex {
				return seg, true
			}
			occurrence++
		}
	}

	if !create {
		return nil, false
	}

	var seg Element
	for ; occurrence <= wantIndex; occurrence++ {
		seg = msg.At(msg.Count() + 1)
		if err := seg.SetValue(loc.Segment); err != nil {
			return nil, false
		}
	}
	return seg, seg != nil
}

// GetAt resolves loc against msg and returns the string found there, or "" if the
// segment, field, repetition, component, or subcomponent it names does not exist.
func GetAt(msg Element, loc *Location) string {
	seg, ok := findSegment(msg, loc, false)
	if !ok {
		return ""
	}
	return GetFieldAt(seg, loc)
}

// GetFieldAt resolves loc's field/repetition/component/subcomponent path against
// seg directly, without looking seg up inside a parent message first. Use this to
// address a single, already-located segment by a "SEG.field..." location string
// (the SEG prefix and any segment index are ignored; only the field path matters).
func GetFieldAt(seg Element, loc *Location) string {
	if !loc.HasField() {
		return seg.Value()
	}

	field := seg.At(loc.Field)
	if !loc.HasComponent() {
		if !loc.HasRepetition() {
			return field.Value()
		}
		return field.At(loc.Repetition + 1).Value()
	}

	repIndex := 1
	if loc.HasRepetition() {
		repIndex = loc.Repetition + 1
	}
	rep := field.At(repIndex)
	if !loc.HasSubComponent() {
		return rep.At(loc.Component).Value()
	}
	return rep.At(loc.Component).At(loc.SubComponent).Value()
}

// GetAllAt resolves loc against msg the same way GetAt does, but when loc does not
// pin a specific repetition it returns every repetition's value instead of just the
// first. This is how repeating fields (e.g. PID-3) are read back in full. Only the
// one segment occurrence that GetAt would use is read; repetitions of the field in
// later occurrences of the same segment type (e.g. a second AL1) are not included.
func GetAllAt(msg Element, loc *Location) []string {
	seg, ok := findSegment(msg, loc, false)
	if !ok {
		return nil
	}
	if !loc.HasField() {
		return []string{seg.Value()}
	}

	field := seg.At(loc.Field)
	if loc.HasRepetition() {
		rep := field.At(loc.Repetition + 1)
		return []string{resolveComponent(rep, loc)}
	}

	count := field.Count()
	if count == 0 {
		return nil
	}
	values := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		values = append(values, resolveComponent(field.At(i), loc))
	}
	return values
}

// resolveComponent narrows a field repetition down to the component/subcomponent
// loc names, or returns the repetition's own value when loc stops at the field level.
func resolveComponent(rep Element, loc *Location) string {
	if !loc.HasComponent() {
		return rep.Value()
	}
	if !loc.HasSubComponent() {
		return rep.At(loc.Component).Value()
	}
	return rep.At(loc.Component).At(loc.SubComponent).Value()
}

// SetAt resolves loc against msg, creating the addressed segment (and, for
// buildertree-backed messages, the intervening field/repetition/component nodes)
// as needed, and writes value there.
func SetAt(msg Element, loc *Location, value string) error {
	seg, ok := findSegment(msg, loc, true)
	if !ok {
		return ErrSegmentNotFound
	}
	if !loc.HasField() {
		return seg.SetValue(value)
	}

	field := seg.At(loc.Field)
	if !loc.HasComponent() {
		if !loc.HasRepetition() {
			return field.SetValue(value)
		}
		return field.At(loc.Repetition + 1).SetValue(value)
	}

	repIndex := 1
	if loc.HasRepetition() {
		repIndex = loc.Repetition + 1
	}
	rep := field.At(repIndex)
	if !loc.HasSubComponent() {
		return rep.At(loc.Component).SetValue(value)
	}
	return rep.At(loc.Component).At(loc.SubComponent).SetValue(value)
}

// Get parses location and resolves it against msg. It is a convenience wrapper
// around ParseLocation and GetAt for callers addressing fields by path string
// rather than a pre-parsed Location.
func Get(msg Element, location string) (string, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return "", err
	}
	return GetAt(msg, loc), nil
}

// GetAll parses location and resolves every matching repetition against msg.
func GetAll(msg Element, location string) ([]string, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}
	return GetAllAt(msg, loc), nil
}

// Set parses location and writes value at that path in msg, creating the segment
// (and, for buildertree messages, the path to it) if it does not yet exist.
func Set(msg Element, location, value string) error {
	loc, err := ParseLocation(location)
	if err != nil {
		return err
	}
	return SetAt(msg, loc, value)
}
