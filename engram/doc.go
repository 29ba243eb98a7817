// Package engram is the top-level content-addressed encoder/decoder: it
// turns a file or directory tree into a single ternary vector plus a
// manifest and codebook that can reconstruct every byte, and it builds
// the retrieval index those vectors can be queried against.
//
// A small input (one of at most Limits.MaxChunksPerSub files) produces a
// flat manifest: every file's vector bundled directly into the root. A
// larger tree is folded bottom-up into a hierarchy of sub-engrams, each
// respecting the same fan-out limit, mirrored as a dag.Graph so bfs and
// dfs can walk and validate it the same way they would any other DAG.
package engram
