// Package sip 是跨链隐私交易的原语引擎：
// 双曲线族隐匿地址（DKSAP 一次性地址）、Pedersen 承诺（同态隐藏金额）、
// 分层 viewing key（认证加密的选择性披露）。
//
// 本库是纯同步的 CPU 密集型函数集合，无网络、无磁盘、无共享可变状态；
// 所有私密输出（私钥标量、盲因子、原始密钥材料）归调用方所有，
// 本库绝不持久化或跨调用缓存。链上提交、ZK 电路、钱包适配均在边界之外。
//
// 子包：
//
//	curve      双曲线族后端（secp256k1 / ed25519）
//	chain      链 → 曲线族与地址编码的静态注册表
//	commitment Pedersen 承诺引擎（NUMS 第二生成元）
//	stealth    一次性地址的派生 / 回收 / 扫描
//	viewing    分层 viewing key 与加密披露记录
//	policy     隐私级别 → 必选组件映射
//	proof      外部 ZK 证明方的边界接口
package sip
