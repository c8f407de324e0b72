// Package idpb defines the uidgen.v1.IDService wire contract: request and
// response messages, the service descriptor, and a client stub. Messages
// travel as MessagePack (see codec.go), so no protoc step is involved.
package idpb

type GenerateBatchRequest struct {
	Kind      string `msgpack:"kind"`
	Namespace string `msgpack:"namespace,omitempty"`
	Name      string `msgpack:"name,omitempty"`
	Prefix    string `msgpack:"prefix,omitempty"`
	Count     int32  `msgpack:"count"`
}

func (x *GenerateBatchRequest) GetKind() string {
	if x != nil {
		return x.Kind
	}
	return ""
}

func (x *GenerateBatchRequest) GetCount() int32 {
	if x != nil {
		return x.Count
	}
	return 0
}

type GenerateBatchResponse struct {
	Kind                 string   `msgpack:"kind"`
	Ids                  []string `msgpack:"ids"`
	NamespaceSubstituted bool     `msgpack:"namespace_substituted,omitempty"`
}

func (x *GenerateBatchResponse) GetIds() []string {
	if x != nil {
		return x.Ids
	}
	return nil
}

type ListKindsRequest struct{}

type KindInfo struct {
	Kind  string `msgpack:"kind"`
	Name  string `msgpack:"name"`
	Class string `msgpack:"class"`
}

type ListKindsResponse struct {
	Kinds    []*KindInfo `msgpack:"kinds"`
	MaxCount int32       `msgpack:"max_count"`
}

func (x *ListKindsResponse) GetKinds() []*KindInfo {
	if x != nil {
		return x.Kinds
	}
	return nil
}

type ValidateIDRequest struct {
	Kind string `msgpack:"kind"`
	Id   string `msgpack:"id"`
}

func (x *ValidateIDRequest) GetKind() string {
	if x != nil {
		return x.Kind
	}
	return ""
}

func (x *ValidateIDRequest) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

type ValidateIDResponse struct {
	Valid  bool   `msgpack:"valid"`
	Reason string `msgpack:"reason,omitempty"`
}

type ParseIDRequest struct {
	Kind string `msgpack:"kind"`
	Id   string `msgpack:"id"`
}

func (x *ParseIDRequest) GetKind() string {
	if x != nil {
		return x.Kind
	}
	return ""
}

func (x *ParseIDRequest) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

type ParseIDResponse struct {
	Valid         bool   `msgpack:"valid"`
	TimestampMs   int64  `msgpack:"timestamp_ms,omitempty"`
	MachineId     int64  `msgpack:"machine_id,omitempty"`
	Sequence      int64  `msgpack:"sequence,omitempty"`
	UuidVersion   int32  `msgpack:"uuid_version,omitempty"`
	UuidVariant   string `msgpack:"uuid_variant,omitempty"`
	RandomPayload string `msgpack:"random_payload,omitempty"`
	IdLength      int32  `msgpack:"id_length,omitempty"`
	Alphabet      string `msgpack:"alphabet,omitempty"`
	ErrorMessage  string `msgpack:"error_message,omitempty"`
}
