// internal/component/crystal.go
package component

// Crystal — кристалл-манекен песочницы: неподвижная цель для замера
// урона. Башни бьют его только по явному фокусу.
type Crystal struct{}
