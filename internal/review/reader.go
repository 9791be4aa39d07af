package review

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"kycaml/pkg/platform/sentinel"
)

// ReadRecords reads payloads from r. The input is either one JSON array of
// payloads or a stream of JSON values (JSON Lines included). Records are
// returned raw; a value that is not an object is left for the interpreter to
// degrade.
func ReadRecords(r io.Reader) ([]json.RawMessage, error) {
	br := bufio.NewReader(r)

	first, err := peekNonSpace(br)
	if err == io.EOF {
		return nil, sentinel.ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	dec := json.NewDecoder(br)

	if first == '[' {
		var records []json.RawMessage
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("%w: record array: %w", sentinel.ErrMalformed, err)
		}
		if len(records) == 0 {
			return nil, sentinel.ErrEmpty
		}
		return records, nil
	}

	var records []json.RawMessage
	for {
		var raw json.RawMessage
		err := dec.Decode(&raw)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", sentinel.ErrMalformed, len(records)+1, err)
		}
		records = append(records, raw)
	}
	return records, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}
