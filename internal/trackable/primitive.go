package trackable

var (
	BooleanType Type[bool]   = booleanType{}
	IntegerType Type[int]    = integerType{}
	StringType  Type[string] = stringType{}
)

type booleanType struct{}

func (booleanType) Default() bool { return false }

func (booleanType) Serialize(s Serializer, v bool) error { return s.WriteBool(v) }

func (booleanType) Deserialize(d Deserializer, _ bool) (bool, error) { return d.ReadBool() }

type integerType struct{}

func (integerType) Default() int { return 0 }

func (integerType) Serialize(s Serializer, v int) error { return s.WriteInt(v) }

func (integerType) Deserialize(d Deserializer, _ int) (int, error) { return d.ReadInt() }

type stringType struct{}

func (stringType) Default() string { return "" }

func (stringType) Serialize(s Serializer, v string) error { return s.WriteString(v) }

func (stringType) Deserialize(d Deserializer, _ string) (string, error) { return d.ReadString() }
