package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Timestamp is stored as a BSON date. Older feedback documents hold the
// client's ISO string instead; those decode too, and a string that does not
// parse is echoed back unchanged.
type Timestamp struct {
	time.Time
	raw string
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if t.Time.IsZero() && t.raw != "" {
		return bson.MarshalValue(t.raw)
	}
	return bson.MarshalValue(t.Time)
}

func (t *Timestamp) UnmarshalBSONValue(typ bsontype.Type, data []byte) error {
	value := bson.RawValue{Type: typ, Value: data}
	switch typ {
	case bsontype.DateTime:
		*t = Timestamp{Time: value.Time().UTC()}
	case bsontype.String:
		*t = parseTimestamp(value.StringValue())
	case bsontype.Null, bsontype.Undefined:
		*t = Timestamp{}
	default:
		return fmt.Errorf("cannot decode %s into a timestamp", typ)
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() && t.raw != "" {
		return json.Marshal(t.raw)
	}
	return json.Marshal(t.Time)
}

// UnmarshalJSON accepts an RFC 3339 string or epoch milliseconds, as browsers send either.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("timestamp must be RFC 3339: %w", err)
		}
		*t = Timestamp{Time: parsed.UTC()}
		return nil
	}

	var millis int64
	if err := json.Unmarshal(data, &millis); err != nil {
		return fmt.Errorf("timestamp must be a string or epoch milliseconds: %w", err)
	}
	*t = Timestamp{Time: time.UnixMilli(millis).UTC()}
	return nil
}

func parseTimestamp(s string) Timestamp {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: parsed.UTC()}
		}
	}
	return Timestamp{raw: s}
}
