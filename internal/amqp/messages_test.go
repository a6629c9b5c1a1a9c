package amqp

import "testing"

func TestTransactionEventRoundTrip(t *testing.T) {
	msg := NewTransactionEvent(42, ActionCreate)
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := TransactionEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != 42 || got.Action != ActionCreate {
		t.Fatalf("got %+v", got)
	}
	if got.OccurredAt.IsZero() {
		t.Fatal("expected timestamp")
	}
}

func TestTransactionEventValidate(t *testing.T) {
	cases := []struct {
		msg TransactionEventMessage
		ok  bool
	}{
		{TransactionEventMessage{ID: 1, Action: ActionCreate}, true},
		{TransactionEventMessage{ID: 1, Action: ActionUpdate}, true},
		{TransactionEventMessage{ID: 1, Action: ActionDelete}, true},
		{TransactionEventMessage{ID: 0, Action: ActionCreate}, false},
		{TransactionEventMessage{ID: 1, Action: "upsert"}, false},
	}
	for i, tc := range cases {
		err := tc.msg.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d: unexpected error %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestTransactionEventFromJSONRejectsGarbage(t *testing.T) {
	if _, err := TransactionEventFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error")
	}
	if _, err := TransactionEventFromJSON([]byte(`{"id":0,"action":"create"}`)); err == nil {
		t.Fatal("expected validation error")
	}
}
