package mention

// Resync realigns mentions with a text that was edited outside the engine.
//
// oldText and mentions must be aligned. The edit is located by the common
// prefix (capped at cursor, the cursor after the edit) and the common suffix
// of both texts. Mentions whose sentinels sat inside the replaced span are
// dropped. Sentinels inside the inserted span cannot be paired with a mention
// and are removed from the returned text; cursor is shifted to match.
func Resync(oldText string, mentions []Mentionable, newText string, cursor int, sentinel rune) (string, []Mentionable, int) {
	text, kept, cur, _ := resync([]rune(oldText), mentions, []rune(newText), cursor, sentinel)
	return string(text), kept, cur
}

func resync(old []rune, mentions []Mentionable, next []rune, cursor int, sentinel rune) ([]rune, []Mentionable, int, int) {
	cursor = clampInt(cursor, 0, len(next))

	prefix := 0
	for prefix < len(old) && prefix < len(next) && prefix < cursor && old[prefix] == next[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(old)-prefix && suffix < len(next)-prefix &&
		old[len(old)-1-suffix] == next[len(next)-1-suffix] {
		suffix++
	}

	before := countSentinels(old[:prefix], sentinel)
	removed := countSentinels(old[prefix:len(old)-suffix], sentinel)

	kept := make([]Mentionable, 0, len(mentions))
	kept = append(kept, mentions[:min(before, len(mentions))]...)
	if from := before + removed; from < len(mentions) {
		kept = append(kept, mentions[from:]...)
	}

	inserted := next[prefix : len(next)-suffix]
	orig := cursor
	stripped := 0
	clean := make([]rune, 0, len(next))
	clean = append(clean, next[:prefix]...)
	for i, r := range inserted {
		if r == sentinel {
			stripped++
			if prefix+i < orig {
				cursor--
			}
			continue
		}
		clean = append(clean, r)
	}
	clean = append(clean, next[len(next)-suffix:]...)

	return clean, kept, cursor, stripped
}
