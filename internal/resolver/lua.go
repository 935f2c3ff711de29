package resolver

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/kode4food/relay/pkg/api"
)

type (
	// LuaLoader loads Lua unit files into sandboxed interpreter states. A
	// unit runs once at load time and must leave a global run function
	LuaLoader struct{}

	luaStep struct {
		state   *lua.State
		locator string
	}
)

const (
	luaEntryPoint       = "run"
	luaGlobalTableIndex = -2
	luaArrayTableIndex  = -3
	luaMapTableIndex    = -3
	luaGlobalTableName  = "_G"
	luaTextMode         = "t"
	luaArrayMetaTable   = "relay.array"
)

var (
	ErrLuaLoad      = errors.New("lua load error")
	ErrLuaExecution = errors.New("lua execution error")
	ErrLuaEntry     = errors.New("lua unit must define a global run function")
)

var luaExclude = [...]string{
	"io", "os", "debug", "package", "require", "dofile", "loadfile", "load",
}

// NewLuaLoader creates a Lua unit loader
func NewLuaLoader() *LuaLoader {
	return &LuaLoader{}
}

// Load compiles and runs the unit's top-level chunk, then verifies that it
// defined a callable run function
func (*LuaLoader) Load(locator string, src []byte) (api.Step, error) {
	L := lua.NewState()
	setupLuaSandbox(L)

	err := L.Load(strings.NewReader(string(src)), "@"+locator, luaTextMode)
	if err != nil {
		return nil, loadError(locator, fmt.Errorf("%w: %w", ErrLuaLoad, err))
	}
	if err := L.ProtectedCall(0, 0, 0); err != nil {
		return nil, loadError(locator, fmt.Errorf("%w: %w", ErrLuaLoad, err))
	}

	L.Global(luaEntryPoint)
	defer L.SetTop(0)
	if !L.IsFunction(-1) {
		return nil, contractError(locator, ErrLuaEntry)
	}

	return &luaStep{state: L, locator: locator}, nil
}

// Invoke calls the unit's run function with the payload as its only
// argument
func (s *luaStep) Invoke(p api.Payload) (api.Payload, error) {
	L := s.state
	defer L.SetTop(0)

	L.Global(luaEntryPoint)
	goToLua(L, p)
	if err := L.ProtectedCall(1, 1, 0); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLuaExecution, err)
	}
	return luaToGo(L, -1), nil
}

func setupLuaSandbox(L *lua.State) {
	lua.OpenLibraries(L)
	L.Global(luaGlobalTableName)
	for _, name := range luaExclude {
		L.PushNil()
		L.SetField(luaGlobalTableIndex, name)
	}
	L.Pop(1)

	lua.NewMetaTable(L, luaArrayMetaTable)
	L.Pop(1)
}

func goToLua(L *lua.State, value any) {
	switch v := value.(type) {
	case string:
		L.PushString(v)
	case bool:
		L.PushBoolean(v)
	case int:
		L.PushInteger(v)
	case int64:
		L.PushInteger(int(v))
	case float64:
		L.PushNumber(v)
	case []any:
		pushLuaArray(L, v)
	case map[string]any:
		pushLuaMap(L, v)
	case nil:
		L.PushNil()
	default:
		L.PushString(fmt.Sprintf("%v", v))
	}
}

func pushLuaArray(L *lua.State, arr []any) {
	L.CreateTable(len(arr), 0)
	lua.SetMetaTableNamed(L, luaArrayMetaTable)
	for i, item := range arr {
		L.PushInteger(i + 1)
		goToLua(L, item)
		L.SetTable(luaArrayTableIndex)
	}
}

func pushLuaMap(L *lua.State, m map[string]any) {
	L.CreateTable(0, len(m))
	for k, val := range m {
		L.PushString(k)
		goToLua(L, val)
		L.SetTable(luaMapTableIndex)
	}
}

func luaNumberToGo(L *lua.State, index int) any {
	num, _ := L.ToNumber(index)
	if num == float64(int(num)) {
		return int(num)
	}
	return num
}

// luaToGo switches on the raw type so numeric strings stay strings and
// keys are never converted in place while a traversal is in progress
func luaToGo(L *lua.State, index int) any {
	switch L.TypeOf(index) {
	case lua.TypeBoolean:
		return L.ToBoolean(index)
	case lua.TypeNumber:
		return luaNumberToGo(L, index)
	case lua.TypeString:
		s, _ := L.ToString(index)
		return s
	case lua.TypeTable:
		return luaTableToAny(L, index)
	default:
		return nil
	}
}

func luaTableToAny(L *lua.State, index int) any {
	index = L.AbsIndex(index)
	length, isArray := luaSequenceLength(L, index)
	if isArray && (length > 0 || isLuaArray(L, index)) {
		return convertLuaArray(L, index, length)
	}

	result := map[string]any{}
	L.PushNil()
	for L.Next(index) {
		var key string
		if L.TypeOf(-2) == lua.TypeString {
			key, _ = L.ToString(-2)
		} else {
			key = fmt.Sprintf("%v", luaToGo(L, -2))
		}
		result[key] = luaToGo(L, -1)
		L.Pop(1)
	}
	return result
}

// luaSequenceLength reports the number of keys in the table and whether
// they are exactly the integers 1 through that number
func luaSequenceLength(L *lua.State, index int) (int, bool) {
	count, highest := 0, 0
	L.PushNil()
	for L.Next(index) {
		if L.TypeOf(-2) != lua.TypeNumber {
			L.Pop(2)
			return 0, false
		}
		num, _ := L.ToNumber(-2)
		if num < 1 || num != math.Trunc(num) {
			L.Pop(2)
			return 0, false
		}
		count++
		highest = max(highest, int(num))
		L.Pop(1)
	}
	return count, count == highest
}

// isLuaArray reports whether the table was pushed from a Go slice, which
// keeps empty lists from turning into empty records
func isLuaArray(L *lua.State, index int) bool {
	if !L.MetaTable(index) {
		return false
	}
	lua.MetaTableNamed(L, luaArrayMetaTable)
	res := L.RawEqual(-1, -2)
	L.Pop(2)
	return res
}

func convertLuaArray(L *lua.State, index, length int) []any {
	arr := make([]any, length)
	for i := 1; i <= length; i++ {
		L.RawGetInt(index, i)
		arr[i-1] = luaToGo(L, -1)
		L.Pop(1)
	}
	return arr
}
