package lisp

// Symbol is a canonical, process-wide interned name. Two Values of Tag
// Symbol referencing the same *Symbol are the same symbol; eq? on symbols
// reduces to pointer comparison, which is also string-equality of the name
// because SymbolTable.Intern never allocates two Symbols for the same name.
type Symbol struct {
	Name string
}

// SymbolTable is the process-wide intern table. Table is a proper list,
// itself built of ordinary heap Pairs, so its spine is just another
// structure the collector can root and walk like any other value. table
// is the lookup map Intern consults to find an existing Symbol; every name
// in it also has a cell on Table. eq? on symbols compares *Symbol pointers
// and does not walk Table.
type SymbolTable struct {
	heap  *Heap
	Table Value // proper list of interned symbol Values, newest first
	table map[string]*Symbol
}

// NewSymbolTable returns an empty SymbolTable backed by heap.
func NewSymbolTable(heap *Heap) *SymbolTable {
	return NewSymbolTableCap(heap, 0)
}

// NewSymbolTableCap is NewSymbolTable with the lookup cache's map
// pre-sized to cap entries, avoiding rehashing for programs that intern a
// known-large number of distinct names up front. See Config's
// WithSymbolTableCap.
func NewSymbolTableCap(heap *Heap, cap int) *SymbolTable {
	return &SymbolTable{
		heap:  heap,
		Table: Nil,
		table: make(map[string]*Symbol, cap),
	}
}

// Intern returns the canonical Value for the symbol named name, allocating
// and linking a new Symbol if none exists yet.
func (st *SymbolTable) Intern(name string) Value {
	if sym, ok := st.table[name]; ok {
		return symbolValue(sym)
	}
	sym := &Symbol{Name: name}
	st.table[name] = sym
	v := symbolValue(sym)
	st.Table = st.heap.Cons(v, st.Table)
	return v
}

// Lookup returns the Value for name without interning it, and whether it
// was already interned.
func (st *SymbolTable) Lookup(name string) (Value, bool) {
	sym, ok := st.table[name]
	if !ok {
		return Nil, false
	}
	return symbolValue(sym), true
}

// Len reports how many distinct symbols are interned.
func (st *SymbolTable) Len() int {
	return len(st.table)
}
