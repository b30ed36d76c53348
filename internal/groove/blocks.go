package groove

// ToBlocks partitions a pattern's event stream into one block per measure.
//
// Measure m (0-based) covers global steps [m*stepsPerMeasure+1, (m+1)*stepsPerMeasure].
// A trailing partial measure is kept, with LengthSteps equal to the remainder.
// Events keep their global step indices; events whose step falls outside
// [1, TotalSteps] are dropped. The function is pure: equal inputs always
// produce equal outputs.
func ToBlocks(p Pattern) []Block {
	per := p.Grid.StepsPerMeasure
	total := p.Grid.TotalSteps
	if per <= 0 || total <= 0 {
		return nil
	}

	measures := (total + per - 1) / per

	blocks := make([]Block, measures)
	for m := 0; m < measures; m++ {
		length := per
		if rem := total - m*per; rem < per {
			length = rem
		}
		blocks[m] = Block{
			LengthSteps: length,
			Events:      []Event{},
			Source:      BlockSource{URL: p.RawURL},
			Tags:        []string{TagGrooveScribe},
		}
	}

	for _, e := range p.Events {
		if e.Step < 1 || e.Step > total {
			continue
		}
		m := (e.Step - 1) / per
		blocks[m].Events = append(blocks[m].Events, e)
	}

	return blocks
}
