/*
Package ports defines the driven ports (interfaces) for the gatefold engine.

These interfaces decouple the lowering core from external implementations, allowing
the engine to work with various model libraries, caches and lock managers.

# Key Interfaces

  - SourceLoader: Responsible for loading model source text (e.g., from Loam or Memory).
  - ModelStore: Responsible for caching lowered models.
  - DistributedLocker: Provides distributed locking so replicas do not lower the same model concurrently.
  - Lowerer: The engine surface consumed by the HTTP and MCP adapters.
*/
package ports
