package ast

// NodeID addresses a node in Tree.Nodes; 0 means "no node".
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }
