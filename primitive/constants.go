package primitive

import "fmt"

// Version identifies which side of a frame's direction byte is in play. This library speaks protocol version 4
// only: the request/response distinction is carried in the version byte itself (0x04 vs 0x84), there is no
// negotiation of older or newer wire formats.
type Version uint8

const (
	VersionRequest  = Version(0x04)
	VersionResponse = Version(0x84)
)

func (v Version) IsValid() bool {
	return v == VersionRequest || v == VersionResponse
}

func (v Version) IsResponse() bool {
	return v == VersionResponse
}

func (v Version) String() string {
	switch v {
	case VersionRequest:
		return "Version REQUEST [0x04]"
	case VersionResponse:
		return "Version RESPONSE [0x84]"
	}
	return fmt.Sprintf("Version ? [%#.2X]", uint8(v))
}

type OpCode uint8

// requests
const (
	OpCodeStartup      = OpCode(0x01)
	OpCodeOptions      = OpCode(0x05)
	OpCodeQuery        = OpCode(0x07)
	OpCodePrepare      = OpCode(0x09)
	OpCodeExecute      = OpCode(0x0A)
	OpCodeRegister     = OpCode(0x0B)
	OpCodeBatch        = OpCode(0x0D)
	OpCodeAuthResponse = OpCode(0x0F)
)

// responses
const (
	OpCodeError         = OpCode(0x00)
	OpCodeReady         = OpCode(0x02)
	OpCodeAuthenticate  = OpCode(0x03)
	OpCodeSupported     = OpCode(0x06)
	OpCodeResult        = OpCode(0x08)
	OpCodeEvent         = OpCode(0x0C)
	OpCodeAuthChallenge = OpCode(0x0E)
	OpCodeAuthSuccess   = OpCode(0x10)
)

func (c OpCode) IsValid() bool {
	switch c {
	case OpCodeStartup, OpCodeOptions, OpCodeQuery, OpCodePrepare, OpCodeExecute, OpCodeRegister,
		OpCodeBatch, OpCodeAuthResponse, OpCodeError, OpCodeReady, OpCodeAuthenticate, OpCodeSupported,
		OpCodeResult, OpCodeEvent, OpCodeAuthChallenge, OpCodeAuthSuccess:
		return true
	}
	return false
}

func (c OpCode) IsRequest() bool {
	switch c {
	case OpCodeStartup, OpCodeOptions, OpCodeQuery, OpCodePrepare, OpCodeExecute, OpCodeRegister,
		OpCodeBatch, OpCodeAuthResponse:
		return true
	}
	return false
}

func (c OpCode) IsResponse() bool {
	switch c {
	case OpCodeError, OpCodeReady, OpCodeAuthenticate, OpCodeSupported, OpCodeResult, OpCodeEvent,
		OpCodeAuthChallenge, OpCodeAuthSuccess:
		return true
	}
	return false
}

func (c OpCode) String() string {
	switch c {
	case OpCodeError:
		return "OpCode ERROR [0x00]"
	case OpCodeStartup:
		return "OpCode STARTUP [0x01]"
	case OpCodeReady:
		return "OpCode READY [0x02]"
	case OpCodeAuthenticate:
		return "OpCode AUTHENTICATE [0x03]"
	case OpCodeOptions:
		return "OpCode OPTIONS [0x05]"
	case OpCodeSupported:
		return "OpCode SUPPORTED [0x06]"
	case OpCodeQuery:
		return "OpCode QUERY [0x07]"
	case OpCodeResult:
		return "OpCode RESULT [0x08]"
	case OpCodePrepare:
		return "OpCode PREPARE [0x09]"
	case OpCodeExecute:
		return "OpCode EXECUTE [0x0A]"
	case OpCodeRegister:
		return "OpCode REGISTER [0x0B]"
	case OpCodeEvent:
		return "OpCode EVENT [0x0C]"
	case OpCodeBatch:
		return "OpCode BATCH [0x0D]"
	case OpCodeAuthChallenge:
		return "OpCode AUTH_CHALLENGE [0x0E]"
	case OpCodeAuthResponse:
		return "OpCode AUTH_RESPONSE [0x0F]"
	case OpCodeAuthSuccess:
		return "OpCode AUTH_SUCCESS [0x10]"
	}
	return fmt.Sprintf("OpCode ? [%#.2X]", uint8(c))
}

type ResultType uint32

const (
	ResultTypeVoid         = ResultType(0x0001)
	ResultTypeRows         = ResultType(0x0002)
	ResultTypeSetKeyspace  = ResultType(0x0003)
	ResultTypePrepared     = ResultType(0x0004)
	ResultTypeSchemaChange = ResultType(0x0005)
)

func (t ResultType) IsValid() bool {
	switch t {
	case ResultTypeVoid, ResultTypeRows, ResultTypeSetKeyspace, ResultTypePrepared, ResultTypeSchemaChange:
		return true
	}
	return false
}

func (t ResultType) String() string {
	switch t {
	case ResultTypeVoid:
		return "ResultType VOID [0x0001]"
	case ResultTypeRows:
		return "ResultType ROWS [0x0002]"
	case ResultTypeSetKeyspace:
		return "ResultType SET_KEYSPACE [0x0003]"
	case ResultTypePrepared:
		return "ResultType PREPARED [0x0004]"
	case ResultTypeSchemaChange:
		return "ResultType SCHEMA_CHANGE [0x0005]"
	}
	return fmt.Sprintf("ResultType ? [%#.8X]", uint32(t))
}

type ErrorCode uint32

// 0xx: fatal errors
const (
	ErrorCodeServerError         = ErrorCode(0x00000000)
	ErrorCodeProtocolError       = ErrorCode(0x0000000A)
	ErrorCodeAuthenticationError = ErrorCode(0x00000100)
)

// 1xx: request execution
const (
	ErrorCodeUnavailable     = ErrorCode(0x00001000)
	ErrorCodeOverloaded      = ErrorCode(0x00001001)
	ErrorCodeIsBootstrapping = ErrorCode(0x00001002)
	ErrorCodeTruncateError   = ErrorCode(0x00001003)
	ErrorCodeWriteTimeout    = ErrorCode(0x00001100)
	ErrorCodeReadTimeout     = ErrorCode(0x00001200)
	ErrorCodeReadFailure     = ErrorCode(0x00001300)
	ErrorCodeFunctionFailure = ErrorCode(0x00001400)
	ErrorCodeWriteFailure    = ErrorCode(0x00001500)
)

// 2xx: query validation
const (
	ErrorCodeSyntaxError   = ErrorCode(0x00002000)
	ErrorCodeUnauthorized  = ErrorCode(0x00002100)
	ErrorCodeInvalid       = ErrorCode(0x00002200)
	ErrorCodeConfigError   = ErrorCode(0x00002300)
	ErrorCodeAlreadyExists = ErrorCode(0x00002400)
	ErrorCodeUnprepared    = ErrorCode(0x00002500)
)

func (c ErrorCode) IsValid() bool {
	switch c {
	case ErrorCodeServerError, ErrorCodeProtocolError, ErrorCodeAuthenticationError,
		ErrorCodeUnavailable, ErrorCodeOverloaded, ErrorCodeIsBootstrapping, ErrorCodeTruncateError,
		ErrorCodeWriteTimeout, ErrorCodeReadTimeout, ErrorCodeReadFailure, ErrorCodeFunctionFailure,
		ErrorCodeWriteFailure, ErrorCodeSyntaxError, ErrorCodeUnauthorized, ErrorCodeInvalid,
		ErrorCodeConfigError, ErrorCodeAlreadyExists, ErrorCodeUnprepared:
		return true
	}
	return false
}

func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeServerError:
		return "ErrorCode ServerError [0x00000000]"
	case ErrorCodeProtocolError:
		return "ErrorCode ProtocolError [0x0000000A]"
	case ErrorCodeAuthenticationError:
		return "ErrorCode AuthenticationError [0x00000100]"
	case ErrorCodeUnavailable:
		return "ErrorCode Unavailable [0x00001000]"
	case ErrorCodeOverloaded:
		return "ErrorCode Overloaded [0x00001001]"
	case ErrorCodeIsBootstrapping:
		return "ErrorCode IsBootstrapping [0x00001002]"
	case ErrorCodeTruncateError:
		return "ErrorCode TruncateError [0x00001003]"
	case ErrorCodeWriteTimeout:
		return "ErrorCode WriteTimeout [0x00001100]"
	case ErrorCodeReadTimeout:
		return "ErrorCode ReadTimeout [0x00001200]"
	case ErrorCodeReadFailure:
		return "ErrorCode ReadFailure [0x00001300]"
	case ErrorCodeFunctionFailure:
		return "ErrorCode FunctionFailure [0x00001400]"
	case ErrorCodeWriteFailure:
		return "ErrorCode WriteFailure [0x00001500]"
	case ErrorCodeSyntaxError:
		return "ErrorCode SyntaxError [0x00002000]"
	case ErrorCodeUnauthorized:
		return "ErrorCode Unauthorized [0x00002100]"
	case ErrorCodeInvalid:
		return "ErrorCode Invalid [0x00002200]"
	case ErrorCodeConfigError:
		return "ErrorCode ConfigError [0x00002300]"
	case ErrorCodeAlreadyExists:
		return "ErrorCode AlreadyExists [0x00002400]"
	case ErrorCodeUnprepared:
		return "ErrorCode Unprepared [0x00002500]"
	}
	return fmt.Sprintf("ErrorCode ? [%#.8X]", uint32(c))
}

// ConsistencyLevel corresponds to the protocol's [consistency] data type.
type ConsistencyLevel uint16

const (
	ConsistencyLevelAny         = ConsistencyLevel(0x0000)
	ConsistencyLevelOne         = ConsistencyLevel(0x0001)
	ConsistencyLevelTwo         = ConsistencyLevel(0x0002)
	ConsistencyLevelThree       = ConsistencyLevel(0x0003)
	ConsistencyLevelQuorum      = ConsistencyLevel(0x0004)
	ConsistencyLevelAll         = ConsistencyLevel(0x0005)
	ConsistencyLevelLocalQuorum = ConsistencyLevel(0x0006)
	ConsistencyLevelEachQuorum  = ConsistencyLevel(0x0007)
	ConsistencyLevelSerial      = ConsistencyLevel(0x0008)
	ConsistencyLevelLocalSerial = ConsistencyLevel(0x0009)
	ConsistencyLevelLocalOne    = ConsistencyLevel(0x000A)
)

func (c ConsistencyLevel) IsValid() bool {
	switch c {
	case ConsistencyLevelAny, ConsistencyLevelOne, ConsistencyLevelTwo, ConsistencyLevelThree,
		ConsistencyLevelQuorum, ConsistencyLevelAll, ConsistencyLevelLocalQuorum, ConsistencyLevelEachQuorum,
		ConsistencyLevelSerial, ConsistencyLevelLocalSerial, ConsistencyLevelLocalOne:
		return true
	}
	return false
}

func (c ConsistencyLevel) IsSerial() bool {
	return c == ConsistencyLevelSerial || c == ConsistencyLevelLocalSerial
}

func (c ConsistencyLevel) String() string {
	switch c {
	case ConsistencyLevelAny:
		return "ConsistencyLevel ANY [0x0000]"
	case ConsistencyLevelOne:
		return "ConsistencyLevel ONE [0x0001]"
	case ConsistencyLevelTwo:
		return "ConsistencyLevel TWO [0x0002]"
	case ConsistencyLevelThree:
		return "ConsistencyLevel THREE [0x0003]"
	case ConsistencyLevelQuorum:
		return "ConsistencyLevel QUORUM [0x0004]"
	case ConsistencyLevelAll:
		return "ConsistencyLevel ALL [0x0005]"
	case ConsistencyLevelLocalQuorum:
		return "ConsistencyLevel LOCAL_QUORUM [0x0006]"
	case ConsistencyLevelEachQuorum:
		return "ConsistencyLevel EACH_QUORUM [0x0007]"
	case ConsistencyLevelSerial:
		return "ConsistencyLevel SERIAL [0x0008]"
	case ConsistencyLevelLocalSerial:
		return "ConsistencyLevel LOCAL_SERIAL [0x0009]"
	case ConsistencyLevelLocalOne:
		return "ConsistencyLevel LOCAL_ONE [0x000A]"
	}
	return fmt.Sprintf("ConsistencyLevel ? [%#.4X]", uint16(c))
}

type WriteType string

const (
	WriteTypeSimple        = WriteType("SIMPLE")
	WriteTypeBatch         = WriteType("BATCH")
	WriteTypeUnloggedBatch = WriteType("UNLOGGED_BATCH")
	WriteTypeCounter       = WriteType("COUNTER")
	WriteTypeBatchLog      = WriteType("BATCH_LOG")
	WriteTypeCas           = WriteType("CAS")
	WriteTypeView          = WriteType("VIEW")
	WriteTypeCdc           = WriteType("CDC")
)

func (w WriteType) IsValid() bool {
	switch w {
	case WriteTypeSimple, WriteTypeBatch, WriteTypeUnloggedBatch, WriteTypeCounter, WriteTypeBatchLog,
		WriteTypeCas, WriteTypeView, WriteTypeCdc:
		return true
	}
	return false
}

// DataTypeCode corresponds to the protocol's <id> field of a [option] — the wire representation of a ColType.
type DataTypeCode uint16

const (
	DataTypeCodeCustom    = DataTypeCode(0x0000)
	DataTypeCodeAscii     = DataTypeCode(0x0001)
	DataTypeCodeBigint    = DataTypeCode(0x0002)
	DataTypeCodeBlob      = DataTypeCode(0x0003)
	DataTypeCodeBoolean   = DataTypeCode(0x0004)
	DataTypeCodeCounter   = DataTypeCode(0x0005)
	DataTypeCodeDecimal   = DataTypeCode(0x0006)
	DataTypeCodeDouble    = DataTypeCode(0x0007)
	DataTypeCodeFloat     = DataTypeCode(0x0008)
	DataTypeCodeInt       = DataTypeCode(0x0009)
	DataTypeCodeTimestamp = DataTypeCode(0x000B)
	DataTypeCodeUuid      = DataTypeCode(0x000C)
	DataTypeCodeVarchar   = DataTypeCode(0x000D)
	DataTypeCodeVarint    = DataTypeCode(0x000E)
	DataTypeCodeTimeuuid  = DataTypeCode(0x000F)
	DataTypeCodeInet      = DataTypeCode(0x0010)
	DataTypeCodeDate      = DataTypeCode(0x0011)
	DataTypeCodeTime      = DataTypeCode(0x0012)
	DataTypeCodeSmallint  = DataTypeCode(0x0013)
	DataTypeCodeTinyint   = DataTypeCode(0x0014)
	DataTypeCodeDuration  = DataTypeCode(0x0015) // supplemented: not part of the v4 wire spec, carried anyway per the decoder gap it fills
	DataTypeCodeList      = DataTypeCode(0x0020)
	DataTypeCodeMap       = DataTypeCode(0x0021)
	DataTypeCodeSet       = DataTypeCode(0x0022)
	DataTypeCodeUdt       = DataTypeCode(0x0030)
	DataTypeCodeTuple     = DataTypeCode(0x0031)
)

func (c DataTypeCode) IsValid() bool {
	switch c {
	case DataTypeCodeList, DataTypeCodeMap, DataTypeCodeSet, DataTypeCodeUdt, DataTypeCodeTuple:
		return true
	}
	return c.IsPrimitive()
}

func (c DataTypeCode) IsPrimitive() bool {
	switch c {
	case DataTypeCodeCustom, DataTypeCodeAscii, DataTypeCodeBigint, DataTypeCodeBlob, DataTypeCodeBoolean,
		DataTypeCodeCounter, DataTypeCodeDecimal, DataTypeCodeDouble, DataTypeCodeFloat, DataTypeCodeInt,
		DataTypeCodeTimestamp, DataTypeCodeUuid, DataTypeCodeVarchar, DataTypeCodeVarint, DataTypeCodeTimeuuid,
		DataTypeCodeInet, DataTypeCodeDate, DataTypeCodeTime, DataTypeCodeSmallint, DataTypeCodeTinyint,
		DataTypeCodeDuration:
		return true
	}
	return false
}

func (c DataTypeCode) String() string {
	switch c {
	case DataTypeCodeCustom:
		return "DataTypeCode Custom [0x0000]"
	case DataTypeCodeAscii:
		return "DataTypeCode Ascii [0x0001]"
	case DataTypeCodeBigint:
		return "DataTypeCode Bigint [0x0002]"
	case DataTypeCodeBlob:
		return "DataTypeCode Blob [0x0003]"
	case DataTypeCodeBoolean:
		return "DataTypeCode Boolean [0x0004]"
	case DataTypeCodeCounter:
		return "DataTypeCode Counter [0x0005]"
	case DataTypeCodeDecimal:
		return "DataTypeCode Decimal [0x0006]"
	case DataTypeCodeDouble:
		return "DataTypeCode Double [0x0007]"
	case DataTypeCodeFloat:
		return "DataTypeCode Float [0x0008]"
	case DataTypeCodeInt:
		return "DataTypeCode Int [0x0009]"
	case DataTypeCodeTimestamp:
		return "DataTypeCode Timestamp [0x000B]"
	case DataTypeCodeUuid:
		return "DataTypeCode Uuid [0x000C]"
	case DataTypeCodeVarchar:
		return "DataTypeCode Varchar [0x000D]"
	case DataTypeCodeVarint:
		return "DataTypeCode Varint [0x000E]"
	case DataTypeCodeTimeuuid:
		return "DataTypeCode Timeuuid [0x000F]"
	case DataTypeCodeInet:
		return "DataTypeCode Inet [0x0010]"
	case DataTypeCodeDate:
		return "DataTypeCode Date [0x0011]"
	case DataTypeCodeTime:
		return "DataTypeCode Time [0x0012]"
	case DataTypeCodeSmallint:
		return "DataTypeCode Smallint [0x0013]"
	case DataTypeCodeTinyint:
		return "DataTypeCode Tinyint [0x0014]"
	case DataTypeCodeDuration:
		return "DataTypeCode Duration [0x0015]"
	case DataTypeCodeList:
		return "DataTypeCode List [0x0020]"
	case DataTypeCodeMap:
		return "DataTypeCode Map [0x0021]"
	case DataTypeCodeSet:
		return "DataTypeCode Set [0x0022]"
	case DataTypeCodeUdt:
		return "DataTypeCode Udt [0x0030]"
	case DataTypeCodeTuple:
		return "DataTypeCode Tuple [0x0031]"
	}
	return fmt.Sprintf("DataType ? [%#.4X]", uint16(c))
}

type EventType string

const (
	EventTypeTopologyChange = EventType("TOPOLOGY_CHANGE")
	EventTypeStatusChange   = EventType("STATUS_CHANGE")
	EventTypeSchemaChange   = EventType("SCHEMA_CHANGE")
)

func (e EventType) IsValid() bool {
	switch e {
	case EventTypeSchemaChange, EventTypeTopologyChange, EventTypeStatusChange:
		return true
	}
	return false
}

type SchemaChangeType string

const (
	SchemaChangeTypeCreated = SchemaChangeType("CREATED")
	SchemaChangeTypeUpdated = SchemaChangeType("UPDATED")
	SchemaChangeTypeDropped = SchemaChangeType("DROPPED")
)

func (t SchemaChangeType) IsValid() bool {
	switch t {
	case SchemaChangeTypeCreated, SchemaChangeTypeUpdated, SchemaChangeTypeDropped:
		return true
	}
	return false
}

type SchemaChangeTarget string

const (
	SchemaChangeTargetKeyspace  = SchemaChangeTarget("KEYSPACE")
	SchemaChangeTargetTable     = SchemaChangeTarget("TABLE")
	SchemaChangeTargetType      = SchemaChangeTarget("TYPE")
	SchemaChangeTargetFunction  = SchemaChangeTarget("FUNCTION")
	SchemaChangeTargetAggregate = SchemaChangeTarget("AGGREGATE")
)

func (t SchemaChangeTarget) IsValid() bool {
	switch t {
	case SchemaChangeTargetKeyspace, SchemaChangeTargetTable, SchemaChangeTargetType,
		SchemaChangeTargetFunction, SchemaChangeTargetAggregate:
		return true
	}
	return false
}

type TopologyChangeType string

const (
	TopologyChangeTypeNewNode     = TopologyChangeType("NEW_NODE")
	TopologyChangeTypeRemovedNode = TopologyChangeType("REMOVED_NODE")
	TopologyChangeTypeMovedNode   = TopologyChangeType("MOVED_NODE")
)

func (t TopologyChangeType) IsValid() bool {
	switch t {
	case TopologyChangeTypeNewNode, TopologyChangeTypeRemovedNode, TopologyChangeTypeMovedNode:
		return true
	}
	return false
}

type StatusChangeType string

const (
	StatusChangeTypeUp   = StatusChangeType("UP")
	StatusChangeTypeDown = StatusChangeType("DOWN")
)

func (t StatusChangeType) IsValid() bool {
	return t == StatusChangeTypeUp || t == StatusChangeTypeDown
}

type BatchType uint8

const (
	BatchTypeLogged   = BatchType(0x00)
	BatchTypeUnlogged = BatchType(0x01)
	BatchTypeCounter  = BatchType(0x02)
)

func (t BatchType) IsValid() bool {
	switch t {
	case BatchTypeLogged, BatchTypeUnlogged, BatchTypeCounter:
		return true
	}
	return false
}

func (t BatchType) String() string {
	switch t {
	case BatchTypeLogged:
		return "BatchType LOGGED [0x00]"
	case BatchTypeUnlogged:
		return "BatchType UNLOGGED [0x01]"
	case BatchTypeCounter:
		return "BatchType COUNTER [0x02]"
	}
	return fmt.Sprintf("BatchType ? [%#.2X]", uint8(t))
}

// BatchChildType discriminates the per-query "kind" byte inside a BATCH request: either a plain query string or
// an opaque prepared statement id.
type BatchChildType uint8

const (
	BatchChildTypeQueryString = BatchChildType(0x00)
	BatchChildTypePreparedId  = BatchChildType(0x01)
)

func (t BatchChildType) IsValid() bool {
	return t == BatchChildTypeQueryString || t == BatchChildTypePreparedId
}

type HeaderFlag uint8

const (
	HeaderFlagCompressed    = HeaderFlag(0x01)
	HeaderFlagTracing       = HeaderFlag(0x02)
	HeaderFlagCustomPayload = HeaderFlag(0x04)
	HeaderFlagWarning       = HeaderFlag(0x08)
)

func (f HeaderFlag) Add(other HeaderFlag) HeaderFlag {
	return f | other
}

func (f HeaderFlag) Remove(other HeaderFlag) HeaderFlag {
	return f &^ other
}

func (f HeaderFlag) Contains(other HeaderFlag) bool {
	return f&other != 0
}

func (f HeaderFlag) String() string {
	return fmt.Sprintf("HeaderFlag [%#.8b]", uint8(f))
}

// QueryFlag is encoded as a single [byte] in protocol v4.
type QueryFlag uint8

const (
	QueryFlagValues            = QueryFlag(0x01)
	QueryFlagSkipMetadata      = QueryFlag(0x02)
	QueryFlagPageSize          = QueryFlag(0x04)
	QueryFlagPagingState       = QueryFlag(0x08)
	QueryFlagSerialConsistency = QueryFlag(0x10)
	QueryFlagDefaultTimestamp  = QueryFlag(0x20)
	QueryFlagValueNames        = QueryFlag(0x40)
)

func (f QueryFlag) Add(other QueryFlag) QueryFlag {
	return f | other
}

func (f QueryFlag) Contains(other QueryFlag) bool {
	return f&other != 0
}

func (f QueryFlag) String() string {
	return fmt.Sprintf("QueryFlag [%#.8b]", uint8(f))
}

type RowsFlag uint32

const (
	RowsFlagGlobalTablesSpec = RowsFlag(0x00000001)
	RowsFlagHasMorePages     = RowsFlag(0x00000002)
	RowsFlagNoMetadata       = RowsFlag(0x00000004)
)

func (f RowsFlag) Add(other RowsFlag) RowsFlag {
	return f | other
}

func (f RowsFlag) Contains(other RowsFlag) bool {
	return f&other != 0
}

func (f RowsFlag) String() string {
	return fmt.Sprintf("RowsFlag [%#.32b]", uint32(f))
}

// VariablesFlag governs the bind-variables metadata block returned for PREPARE/EXECUTE.
type VariablesFlag uint32

const (
	VariablesFlagGlobalTablesSpec = VariablesFlag(0x00000001)
)

func (f VariablesFlag) Contains(other VariablesFlag) bool {
	return f&other != 0
}

// Compression names the negotiated body compression algorithm.
type Compression string

const (
	CompressionNone   Compression = "NONE"
	CompressionLz4    Compression = "LZ4"
	CompressionSnappy Compression = "SNAPPY"
)

func (c Compression) IsValid() bool {
	switch c {
	case CompressionNone, CompressionLz4, CompressionSnappy:
		return true
	}
	return false
}
