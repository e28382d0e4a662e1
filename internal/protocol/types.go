package protocol

// #region command
// Command is one of the eleven menu commands.
type Command string

const (
	HEC Command = "HEC"
	HES Command = "HES"
	ELE Command = "ELE"
	AUT Command = "AUT"
	DET Command = "DET"
	SOS Command = "SOS"
	PRE Command = "PRE"
	ARC Command = "ARC"
	RES Command = "RES"
	TRA Command = "TRA"
	CIE Command = "CIE"
)

// Tag returns the lower-case node type used for thought nodes.
func (c Command) Tag() string {
	switch c {
	case HEC:
		return "hec"
	case HES:
		return "hes"
	case ELE:
		return "ele"
	case AUT:
		return "aut"
	case DET:
		return "det"
	case SOS:
		return "sos"
	case PRE:
		return "pre"
	case ARC:
		return "arc"
	case RES:
		return "res"
	case TRA:
		return "tra"
	case CIE:
		return "cie"
	}
	return ""
}
// #endregion command

// #region protocol-key
// Key is one of the numeric protocol keys.
type Key string

const (
	KeyMenu   Key = "[18·1]"
	KeyChild  Key = "[15·13·18·5·18·1]"
	KeyHestia Key = "[8·5·19·20·9·1]"
	KeyHec    Key = "[8·5·3]"
	KeyEle    Key = "[5·12·5]"
	KeyAut    Key = "[1]"
	KeyArc    Key = "[2]"
	KeyGen    Key = "[3]"
)

// Keys lists every protocol key in declaration order.
var Keys = []Key{KeyMenu, KeyChild, KeyHestia, KeyHec, KeyEle, KeyAut, KeyArc, KeyGen}
// #endregion protocol-key

// #region token
// Token is the resolver output: exactly one of Command or Key is set.
type Token struct {
	Command Command
	Key     Key
}

// IsKey reports whether the token is a protocol key.
func (t Token) IsKey() bool { return t.Key != "" }

// String returns the wire form of the token.
func (t Token) String() string {
	if t.Key != "" {
		return string(t.Key)
	}
	return string(t.Command)
}
// #endregion token

// #region spec
// Spec describes a command for the menu and for thought nodes.
type Spec struct {
	Command     Command
	Code        string
	Number      int
	Name        string
	Description string
	Function    string
}
// #endregion spec

// #region config
const (
	Version        = "5.0"
	Author         = "BONNIE"
	HiddenAuthor   = "[B•15·14·14·9·5·18]"
	CreatedOn      = "2026-02-13"
	License        = "BONNIE LICENSE v1.0"
	GuidanceNotice = "Entrada no reconocida. Escribe RA para menú o IA [pregunta] para Testiateria."
)
// #endregion config
